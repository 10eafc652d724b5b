// Package progression assembles ranked fingering sequences for a
// chord progression. Each adjacent pair of chords is scored on how
// little the fretting hand has to move, then whole sequences are built
// by greedy forward construction from several starting fingerings.
package progression

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/chord-forge/config"
	"github.com/RyanBlaney/chord-forge/fingering"
	"github.com/RyanBlaney/chord-forge/generator"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

// Options control progression assembly.
type Options struct {
	// Limit is the number of alternative sequences to return.
	Limit int `json:"limit"`
	// MaxFretDistance caps the position jump between consecutive
	// fingerings. A hard constraint; see ChordTransition.Relaxed for
	// the one escape hatch.
	MaxFretDistance int `json:"max_fret_distance"`
	// CandidatesPerChord is how many fingerings to consider per chord.
	CandidatesPerChord int `json:"candidates_per_chord"`
	// Generator configures the per-chord fingering search; its Limit
	// is overridden by CandidatesPerChord.
	Generator generator.Options `json:"generator"`
}

// DefaultOptions returns the standard assembly settings.
func DefaultOptions() Options {
	return Options{
		Limit:              3,
		MaxFretDistance:    3,
		CandidatesPerChord: 20,
		Generator:          generator.DefaultOptions(),
	}
}

// ChordTransition is the scored move between two consecutive
// fingerings in a sequence.
type ChordTransition struct {
	FromChord string                    `json:"from_chord"`
	ToChord   string                    `json:"to_chord"`
	From      generator.ScoredFingering `json:"from"`
	To        generator.ScoredFingering `json:"to"`
	Score     int                       `json:"score"`
	// FingerMovements counts strings whose fretted position changes,
	// with a full barre that shifts fret counted as a single movement
	// regardless of how many strings it covers.
	FingerMovements int `json:"finger_movements"`
	// CommonAnchors counts strings that stay put, open strings
	// included.
	CommonAnchors    int `json:"common_anchors"`
	PositionDistance int `json:"position_distance"`
	// Relaxed is true when no candidate satisfied MaxFretDistance and
	// the least-bad transition was taken instead.
	Relaxed bool `json:"relaxed,omitempty"`
}

// ProgressionSequence is one complete fingering assignment for the
// chord list, with the transitions that justify it.
type ProgressionSequence struct {
	Chords             []string                    `json:"chords"`
	Fingerings         []generator.ScoredFingering `json:"fingerings"`
	Transitions        []ChordTransition           `json:"transitions"`
	TotalScore         int                         `json:"total_score"`
	AvgTransitionScore float64                     `json:"avg_transition_score"`
}

// Generate builds ranked fingering sequences for the named chords.
// Chord names that fail to parse abort the call with the ParseError;
// a chord with no playable fingering yields an empty result, which is
// a valid answer rather than an error.
func Generate(chordNames []string, inst instrument.Instrument, opts Options) ([]ProgressionSequence, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}
	if opts.MaxFretDistance <= 0 {
		opts.MaxFretDistance = DefaultOptions().MaxFretDistance
	}
	if opts.CandidatesPerChord <= 0 {
		opts.CandidatesPerChord = DefaultOptions().CandidatesPerChord
	}

	specs := make([]theory.ChordSpec, len(chordNames))
	for i, name := range chordNames {
		spec, err := theory.ParseChord(name)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	if len(specs) == 0 {
		return nil, nil
	}

	genOpts := opts.Generator
	genOpts.Limit = opts.CandidatesPerChord

	candidates := make([][]generator.ScoredFingering, len(specs))
	for i, spec := range specs {
		candidates[i] = generator.Generate(spec, inst, genOpts)
		if len(candidates[i]) == 0 {
			return nil, nil
		}
	}

	weights := genOpts.Weights
	if weights == nil {
		weights = config.Default()
	}
	tw := weights.SoloTransition
	if genOpts.Context == generator.Band {
		tw = weights.BandTransition
	}

	starts := opts.Limit
	if starts > len(candidates[0]) {
		starts = len(candidates[0])
	}

	sequences := make([]ProgressionSequence, 0, starts)
	for j := 0; j < starts; j++ {
		sequences = append(sequences,
			buildSequence(chordNames, candidates, j, inst, tw, opts.MaxFretDistance))
	}

	sort.SliceStable(sequences, func(i, j int) bool {
		return sequences[i].TotalScore > sequences[j].TotalScore
	})
	if len(sequences) > opts.Limit {
		sequences = sequences[:opts.Limit]
	}
	return sequences, nil
}

// buildSequence constructs one sequence greedily: seed the first chord
// with its startIdx-th best fingering, then for each following chord
// take the candidate with the best transition score that stays within
// maxDistance. When nothing does, the best-scoring transition overall
// is taken and flagged Relaxed; a hard failure here would leave the
// caller with nothing actionable.
func buildSequence(
	chordNames []string,
	candidates [][]generator.ScoredFingering,
	startIdx int,
	inst instrument.Instrument,
	tw config.TransitionWeights,
	maxDistance int,
) ProgressionSequence {
	selected := []generator.ScoredFingering{candidates[0][startIdx]}
	transitions := make([]ChordTransition, 0, len(candidates)-1)

	for i := 1; i < len(candidates); i++ {
		from := selected[i-1]

		var bestValid, bestAny *ChordTransition
		var bestValidTo, bestAnyTo generator.ScoredFingering
		for _, to := range candidates[i] {
			t := scoreTransition(chordNames[i-1], chordNames[i], from, to, inst, tw)
			if bestAny == nil || t.Score > bestAny.Score {
				cp := t
				bestAny, bestAnyTo = &cp, to
			}
			if t.PositionDistance <= maxDistance {
				if bestValid == nil || t.Score > bestValid.Score {
					cp := t
					bestValid, bestValidTo = &cp, to
				}
			}
		}

		chosen, chosenTo := bestValid, bestValidTo
		if chosen == nil {
			chosen, chosenTo = bestAny, bestAnyTo
			chosen.Relaxed = true
		}

		transitions = append(transitions, *chosen)
		selected = append(selected, chosenTo)
	}

	total := 0
	scores := make([]float64, len(transitions))
	for i, t := range transitions {
		total += t.Score
		scores[i] = float64(t.Score)
	}
	avg := 0.0
	if len(scores) > 0 {
		avg = stat.Mean(scores, nil)
	}

	return ProgressionSequence{
		Chords:             append([]string(nil), chordNames...),
		Fingerings:         selected,
		Transitions:        transitions,
		TotalScore:         total,
		AvgTransitionScore: avg,
	}
}

// scoreTransition scores the move from one fingering to the next.
// Finger movement dominates, anchors second, shape similarity third,
// position distance last.
func scoreTransition(
	fromChord, toChord string,
	from, to generator.ScoredFingering,
	inst instrument.Instrument,
	tw config.TransitionWeights,
) ChordTransition {
	movements, anchors := fingerChanges(from.Fingering, to.Fingering)

	distance := to.Position - from.Position
	if distance < 0 {
		distance = -distance
	}

	score := tw.Base
	score += (4 - movements) * tw.MovementWeight
	score += anchors * tw.AnchorBonus
	score += shapeSimilarity(from.Fingering, to.Fingering, inst, tw)
	score -= distance * tw.DistancePenalty

	return ChordTransition{
		FromChord:        fromChord,
		ToChord:          toChord,
		From:             from,
		To:               to,
		Score:            score,
		FingerMovements:  movements,
		CommonAnchors:    anchors,
		PositionDistance: distance,
	}
}

// fingerChanges counts moving and anchored strings between two
// fingerings. A full barre that slides to a new fret moves one finger,
// not one per string, so strings covered by the barre on both sides
// collapse into a single movement.
func fingerChanges(from, to fingering.Fingering) (movements, anchors int) {
	fromStates := from.Strings()
	toStates := to.Strings()
	n := len(fromStates)
	if len(toStates) < n {
		n = len(toStates)
	}

	fromBarre, fromOK := fullBarreOf(from)
	toBarre, toOK := fullBarreOf(to)
	barreShift := fromOK && toOK && fromBarre.Fret != toBarre.Fret

	shifted := false
	for i := 0; i < n; i++ {
		fromFret, fromPlayed := fromStates[i].Fret()
		toFret, toPlayed := toStates[i].Fret()

		switch {
		case fromPlayed && toPlayed:
			if fromFret == toFret {
				anchors++
				continue
			}
			if barreShift &&
				fromFret == fromBarre.Fret && toFret == toBarre.Fret &&
				i >= fromBarre.FromString && i <= fromBarre.ToString &&
				i >= toBarre.FromString && i <= toBarre.ToString {
				shifted = true
				continue
			}
			movements++
		case fromPlayed != toPlayed:
			movements++
		}
	}
	if shifted {
		movements++
	}
	return movements, anchors
}

func fullBarreOf(f fingering.Fingering) (fingering.Barre, bool) {
	for _, b := range fingering.DetectBarres(f) {
		if b.Full {
			return b, true
		}
	}
	return fingering.Barre{}, false
}

func shapeSimilarity(from, to fingering.Fingering, inst instrument.Instrument, tw config.TransitionWeights) int {
	bonus := 0

	if len(fingering.DetectBarres(from)) > 0 && len(fingering.DetectBarres(to)) > 0 {
		bonus += tw.BarreSimilarityBonus
	}
	if from.IsOpenPosition(inst) && to.IsOpenPosition(inst) {
		bonus += tw.OpenPositionBonus
	}

	diff := from.PlayedCount() - to.PlayedCount()
	if diff < 0 {
		diff = -diff
	}
	if diff <= 1 {
		bonus += tw.StringCountSimilarityBonus
	}
	return bonus
}

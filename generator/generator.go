// Package generator turns a chord spec into ranked playable
// fingerings for an instrument. The search is a depth-first traversal
// over strings with incremental pruning on stretch, reachable
// played-string count and finger usage, which is what keeps a 4+ note
// chord on a 24-fret instrument in single-digit milliseconds.
package generator

import (
	"sort"
	"strings"

	"github.com/RyanBlaney/chord-forge/config"
	"github.com/RyanBlaney/chord-forge/fingering"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

// PlayingContext selects the scoring profile: Solo assumes the
// instrument carries the harmony alone, Band assumes a bass player
// and a mix to leave room in.
type PlayingContext int

const (
	Solo PlayingContext = iota
	Band
)

func (c PlayingContext) String() string {
	if c == Band {
		return "band"
	}
	return "solo"
}

// ParsePlayingContext parses "solo" or "band"; anything else is solo.
func ParsePlayingContext(s string) PlayingContext {
	if strings.EqualFold(strings.TrimSpace(s), "band") {
		return Band
	}
	return Solo
}

// Options control the search and ranking.
type Options struct {
	// Limit caps the number of returned fingerings.
	Limit int `json:"limit"`
	// PreferredPosition, when set, biases ranking toward voicings
	// near that fret.
	PreferredPosition *int `json:"preferred_position,omitempty"`
	// Voicing, when set, keeps only that voicing classification.
	Voicing *theory.Voicing `json:"voicing,omitempty"`
	// RootInBassRequired drops voicings whose bass note is not the
	// root.
	RootInBassRequired bool `json:"root_in_bass_required"`
	// MaxFret caps the search; usually well below the instrument's
	// physical fret count.
	MaxFret int `json:"max_fret"`
	// Context selects the solo or band weight profile.
	Context PlayingContext `json:"playing_context"`
	// Weights overrides the built-in profiles when non-nil.
	Weights *config.Weights `json:"-"`
}

// DefaultOptions returns the standard search settings.
func DefaultOptions() Options {
	return Options{
		Limit:   10,
		MaxFret: 12,
		Context: Solo,
	}
}

// ScoredFingering is one ranked result: the fingering, its sounding
// notes, and the derived facts ranking was based on. Immutable once
// returned.
type ScoredFingering struct {
	Fingering     fingering.Fingering `json:"-"`
	Tab           string              `json:"tab"`
	Notes         []theory.Note       `json:"notes"`
	Score         int                 `json:"score"`
	Voicing       theory.Voicing      `json:"voicing"`
	HasRootInBass bool                `json:"has_root_in_bass"`
	// Position is the neck position: the lowest fret used, 0 when all
	// played strings are open.
	Position int `json:"position"`
}

// Generate finds and ranks fingerings for the chord on the given
// instrument. An empty result means no fingering satisfies the
// constraints; that is a valid answer, not an error.
func Generate(spec theory.ChordSpec, inst instrument.Instrument, opts Options) []ScoredFingering {
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}
	if opts.MaxFret <= 0 {
		opts.MaxFret = DefaultOptions().MaxFret
	}
	if opts.MaxFret > inst.MaxFret() {
		opts.MaxFret = inst.MaxFret()
	}
	weights := opts.Weights
	if weights == nil {
		weights = config.Default()
	}
	profile := weights.Solo
	if opts.Context == Band {
		profile = weights.Band
	}

	allPitches := spec.PitchClasses()
	requiredPitches := spec.RequiredPitchClasses()
	corePitches := spec.CorePitchClasses()

	// Per-string candidate frets: every fret whose pitch class is a
	// chord tone, plus Muted.
	tuning := inst.Tuning()
	candidates := make([][]fingering.StringState, len(tuning))
	for s, open := range tuning {
		options := []fingering.StringState{fingering.Muted}
		for fret := 0; fret <= opts.MaxFret; fret++ {
			pitch := open.Pitch.AddSemitones(fret)
			if containsPitch(allPitches, pitch) {
				options = append(options, fingering.StringState(fret))
			}
		}
		candidates[s] = options
	}

	search := searcher{
		candidates: candidates,
		maxStretch: inst.MaxStretch(),
		maxFingers: inst.MaxFingers(),
		minPlayed:  inst.MinPlayedStrings(),
		current:    make([]fingering.StringState, 0, len(tuning)),
		fretsInUse: make([]int8, opts.MaxFret+1),
	}
	search.run()

	bassTarget := spec.Root
	if spec.Bass != nil {
		bassTarget = *spec.Bass
	}

	seen := make(map[string]bool, len(search.results))
	scored := make([]ScoredFingering, 0, len(search.results))
	for _, states := range search.results {
		f := fingering.New(states...)

		if !f.IsPlayable(inst) {
			continue
		}
		if f.PlayedCount() < inst.MinPlayedStrings() {
			continue
		}

		pitches := f.UniquePitchClasses(inst)
		voicing := classifyVoicing(pitches, allPitches, requiredPitches, corePitches)
		if voicing == theory.VoicingIncomplete {
			if opts.Voicing == nil || *opts.Voicing != theory.VoicingIncomplete {
				continue
			}
		}
		if opts.Voicing != nil && voicing != *opts.Voicing {
			continue
		}

		hasRootInBass := false
		if bass, ok := f.BassNote(inst); ok {
			hasRootInBass = bass.Pitch == bassTarget
		}
		if opts.RootInBassRequired && !hasRootInBass {
			continue
		}

		tab := f.Encode()
		if seen[tab] {
			continue
		}
		seen[tab] = true

		scored = append(scored, ScoredFingering{
			Fingering:     f,
			Tab:           tab,
			Notes:         f.Notes(inst),
			Score:         scoreFingering(f, inst, opts, profile, voicing, hasRootInBass),
			Voicing:       voicing,
			HasRootInBass: hasRootInBass,
			Position:      f.Position(),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Tab < scored[j].Tab
	})
	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}
	return scored
}

// searcher carries the DFS state. Each frame extends current by one
// string and prunes before recursing.
type searcher struct {
	candidates [][]fingering.StringState
	maxStretch int
	maxFingers int
	minPlayed  int

	current []fingering.StringState
	results [][]fingering.StringState

	played        int
	minFret       int // lowest above-nut fret in current, 0 = none
	maxFret       int
	fretsInUse    []int8 // count per above-nut fret, sized to the search bound
	distinctFrets int
}

func (s *searcher) run() {
	s.walk(0)
}

func (s *searcher) walk(stringIdx int) {
	if stringIdx == len(s.candidates) {
		s.results = append(s.results, append([]fingering.StringState(nil), s.current...))
		return
	}

	for _, state := range s.candidates[stringIdx] {
		s.push(state)
		if s.viable(stringIdx + 1) {
			s.walk(stringIdx + 1)
		}
		s.pop(state)
	}
}

func (s *searcher) push(state fingering.StringState) {
	s.current = append(s.current, state)
	if fret, played := state.Fret(); played {
		s.played++
		if fret > 0 {
			if s.fretsInUse[fret] == 0 {
				s.distinctFrets++
			}
			s.fretsInUse[fret]++
			if s.minFret == 0 || fret < s.minFret {
				s.minFret = fret
			}
			if fret > s.maxFret {
				s.maxFret = fret
			}
		}
	}
}

func (s *searcher) pop(state fingering.StringState) {
	s.current = s.current[:len(s.current)-1]
	if fret, played := state.Fret(); played {
		s.played--
		if fret > 0 {
			s.fretsInUse[fret]--
			if s.fretsInUse[fret] == 0 {
				s.distinctFrets--
			}
			s.recomputeBounds()
		}
	}
}

func (s *searcher) recomputeBounds() {
	s.minFret, s.maxFret = 0, 0
	for fret := 1; fret < len(s.fretsInUse); fret++ {
		if s.fretsInUse[fret] > 0 {
			if s.minFret == 0 {
				s.minFret = fret
			}
			s.maxFret = fret
		}
	}
}

// viable prunes a partial assignment before recursing: the fretted
// spread must fit the hand, optimistically playing every remaining
// string must still be able to reach the minimum, and the distinct
// above-nut frets in use must not exceed the finger count (a barre
// collapses to one finger, so distinct frets is a lower bound).
func (s *searcher) viable(consumed int) bool {
	if s.minFret > 0 && s.maxFret-s.minFret > s.maxStretch {
		return false
	}
	remaining := len(s.candidates) - consumed
	if s.played+remaining < s.minPlayed {
		return false
	}
	if s.distinctFrets > s.maxFingers {
		return false
	}
	return true
}

// classifyVoicing buckets a pitch set against the chord formula.
func classifyVoicing(pitches, all, required, core []theory.PitchClass) theory.Voicing {
	switch {
	case containsAll(pitches, all):
		return theory.VoicingFull
	case containsAll(pitches, required):
		return theory.VoicingCore
	case containsAll(pitches, core):
		return theory.VoicingJazzy
	default:
		return theory.VoicingIncomplete
	}
}

func containsPitch(set []theory.PitchClass, p theory.PitchClass) bool {
	for _, s := range set {
		if s == p {
			return true
		}
	}
	return false
}

func containsAll(haystack, needles []theory.PitchClass) bool {
	for _, n := range needles {
		if !containsPitch(haystack, n) {
			return false
		}
	}
	return true
}

func scoreFingering(
	f fingering.Fingering,
	inst instrument.Instrument,
	opts Options,
	w config.ScoringWeights,
	voicing theory.Voicing,
	hasRootInBass bool,
) int {
	score := f.PlayabilityScore(inst)
	score += f.PlayedCount() * w.StringUsageBonus
	score -= f.InteriorMuteCount() * w.InteriorMutePenalty

	if hasRootInBass {
		score += w.RootInBassBonus
	}

	switch voicing {
	case theory.VoicingFull:
		score += w.FullVoicingBonus
	case theory.VoicingCore:
		score += w.CoreVoicingBonus + w.CompactVoicingBonus
	case theory.VoicingJazzy:
		score += w.CompactVoicingBonus
		if !hasRootInBass {
			score -= w.JazzyWithoutRootPenalty
		}
	}

	if w.AvoidLowStringsBonus > 0 {
		states := f.Strings()
		usesLow := (len(states) > 0 && states[0].Played()) ||
			(len(states) > 1 && states[1].Played())
		if !usesLow {
			score += w.AvoidLowStringsBonus
		}
	}

	position := f.Position()
	switch {
	case opts.PreferredPosition != nil:
		distance := position - *opts.PreferredPosition
		if distance < 0 {
			distance = -distance
		}
		score -= distance * w.PositionDistancePenalty
	case w.MidNeckMax > 0:
		if position < w.MidNeckMin {
			score -= (w.MidNeckMin - position) * w.MidNeckPenalty
		} else if position > w.MidNeckMax {
			score -= (position - w.MidNeckMax) * w.MidNeckPenalty
		}
	case w.HighPositionPenalty > 0 && position > w.PositionThreshold:
		score -= (position - w.PositionThreshold) * w.HighPositionPenalty
	}

	if score < 0 {
		score = 0
	}
	return score
}

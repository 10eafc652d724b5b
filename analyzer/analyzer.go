// Package analyzer performs reverse lookup: given a fingering, rank
// the chords it could be. Every played pitch class is tried as a root
// against every known quality; candidates are scored on completeness,
// bass placement and specificity, then explained in prose.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RyanBlaney/chord-forge/fingering"
	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

// ChordMatch is one candidate interpretation of a fingering.
type ChordMatch struct {
	Chord theory.ChordSpec `json:"chord"`
	// Name is the display name rendered with the spelling (sharp or
	// flat) voted by the played notes.
	Name string `json:"name"`
	// Score is the raw ranking score; Confidence is the same value
	// clamped to 0-100 for display.
	Score      int `json:"score"`
	Confidence int `json:"confidence"`
	RootInBass bool `json:"root_in_bass"`
	// Completeness is the fraction of required formula intervals
	// present, 0.0-1.0.
	Completeness float64 `json:"completeness"`
	// Explanation is a one-line account of the match: notes found,
	// bass status, missing tones.
	Explanation string `json:"explanation"`
	// Shape names the standard shape the fingering realizes, when
	// recognized ("E shape at fret 1" for 133211 on guitar).
	Shape string `json:"shape,omitempty"`
}

// Analyze ranks chord interpretations of a fingering on an
// instrument. An empty result means the notes have no recognizable
// harmonic structure; that is a valid answer, not an error.
func Analyze(f fingering.Fingering, inst instrument.Instrument) []ChordMatch {
	pitches := f.UniquePitchClasses(inst)
	if len(pitches) == 0 {
		return nil
	}

	var bassPitch *theory.PitchClass
	if bass, ok := f.BassNote(inst); ok {
		p := bass.Pitch
		bassPitch = &p
	}

	preferFlats := votesFlat(pitches)

	shape := ""
	if name, base, ok := fingering.MatchShape(f, inst.Name()); ok {
		shape = fmt.Sprintf("%s shape at fret %d", name, base)
	}

	var matches []ChordMatch
	for _, root := range pitches {
		intervals := intervalsFromRoot(root, pitches)
		for _, quality := range theory.AllChordQualities() {
			if m, ok := matchQuality(root, quality, intervals, pitches, bassPitch, preferFlats); ok {
				m.Shape = shape
				matches = append(matches, m)
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Completeness != matches[j].Completeness {
			return matches[i].Completeness > matches[j].Completeness
		}
		return matches[i].Name < matches[j].Name
	})
	return dedupeByName(matches)
}

// AnalyzeTab decodes tab notation for the instrument and analyzes it.
func AnalyzeTab(tab string, inst instrument.Instrument) []ChordMatch {
	return Analyze(fingering.Decode(tab, inst.StringCount()), inst)
}

func intervalsFromRoot(root theory.PitchClass, pitches []theory.PitchClass) map[int]bool {
	intervals := make(map[int]bool, len(pitches))
	for _, p := range pitches {
		intervals[root.DistanceTo(p)] = true
	}
	return intervals
}

func matchQuality(
	root theory.PitchClass,
	quality theory.ChordQuality,
	played map[int]bool,
	pitches []theory.PitchClass,
	bassPitch *theory.PitchClass,
	preferFlats bool,
) (ChordMatch, bool) {
	required, optional := quality.Formula()

	requiredPresent := 0
	var missing []theory.Interval
	for _, iv := range required {
		if played[mod12(iv.Semitones())] {
			requiredPresent++
		} else {
			missing = append(missing, iv)
		}
	}

	// The root and at least one deciding tone must be present.
	if requiredPresent < 2 {
		return ChordMatch{}, false
	}

	completeness := float64(requiredPresent) / float64(len(required))
	rootInBass := bassPitch != nil && *bassPitch == root

	score := int(completeness * 100)
	if rootInBass {
		score += 20
	}

	// More specific qualities outrank generic ones at equal
	// completeness: a full G7 match beats a full G match.
	score += len(required) * 3

	optionalPresent := 0
	for _, iv := range optional {
		if played[mod12(iv.Semitones())] {
			optionalPresent++
		}
	}
	score += optionalPresent * 5

	explained := make(map[int]bool, len(required)+len(optional))
	for _, iv := range required {
		explained[mod12(iv.Semitones())] = true
	}
	for _, iv := range optional {
		explained[mod12(iv.Semitones())] = true
	}
	extras := 0
	for semitone := range played {
		if !explained[semitone] {
			extras++
		}
	}
	score -= extras * 10
	if score < 0 {
		score = 0
	}

	// Tie-break toward the simplest explanation for bare triads.
	if completeness >= 1.0 &&
		(quality == theory.QualityMajor || quality == theory.QualityMinor) {
		score += 5
	}

	spec := theory.NewChordSpec(root, quality)
	name := spec.Name()
	if preferFlats {
		name = spec.FlatName()
	}

	confidence := score
	if confidence > 100 {
		confidence = 100
	}

	return ChordMatch{
		Chord:        spec,
		Name:         name,
		Score:        score,
		Confidence:   confidence,
		RootInBass:   rootInBass,
		Completeness: completeness,
		Explanation:  explain(name, pitches, rootInBass, missing, extras, preferFlats),
	}, true
}

func mod12(semitones int) int {
	return ((semitones % 12) + 12) % 12
}

// votesFlat decides the display spelling by majority vote among the
// played accidentals: Eb, Ab and Bb lean flat, C# and F# lean sharp.
// Naturals abstain; ties go to sharps.
func votesFlat(pitches []theory.PitchClass) bool {
	flats, sharps := 0, 0
	for _, p := range pitches {
		switch p {
		case theory.DSharp, theory.GSharp, theory.ASharp:
			flats++
		case theory.CSharp, theory.FSharp:
			sharps++
		}
	}
	return flats > sharps
}

func explain(
	name string,
	pitches []theory.PitchClass,
	rootInBass bool,
	missing []theory.Interval,
	extras int,
	preferFlats bool,
) string {
	noteNames := make([]string, len(pitches))
	for i, p := range pitches {
		if preferFlats {
			noteNames[i] = p.FlatName()
		} else {
			noteNames[i] = p.SharpName()
		}
	}

	parts := []string{fmt.Sprintf("%s: notes %s", name, strings.Join(noteNames, " "))}
	if rootInBass {
		parts = append(parts, "root in bass")
	}
	if len(missing) > 0 {
		missingNames := make([]string, len(missing))
		for i, iv := range missing {
			missingNames[i] = iv.Name()
		}
		parts = append(parts, "missing "+strings.Join(missingNames, ", "))
	}
	if extras > 0 {
		parts = append(parts, fmt.Sprintf("%d note(s) outside the formula", extras))
	}
	return strings.Join(parts, "; ")
}

func dedupeByName(matches []ChordMatch) []ChordMatch {
	seen := make(map[string]bool, len(matches))
	unique := matches[:0]
	for _, m := range matches {
		if !seen[m.Name] {
			seen[m.Name] = true
			unique = append(unique, m)
		}
	}
	return unique
}

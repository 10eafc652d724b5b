// Package fingering models per-string fret state for a chord voicing,
// its tab-notation codec, and the derived properties (barres, stretch,
// finger count, playability) that generator and optimizer scoring is
// built on.
package fingering

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/RyanBlaney/chord-forge/instrument"
	"github.com/RyanBlaney/chord-forge/theory"
)

// StringState is the state of one string: Muted, or a fret number
// where 0 means open.
type StringState int8

// Muted marks a string that is not played.
const Muted StringState = -1

// Played reports whether the string sounds (open or fretted).
func (s StringState) Played() bool { return s >= 0 }

// Fret returns the fret number and whether the string is played.
func (s StringState) Fret() (int, bool) {
	if s < 0 {
		return 0, false
	}
	return int(s), true
}

// Fingering is an immutable per-string fret assignment, ordered by
// string index (fingering order, low string first in tab).
type Fingering struct {
	strings []StringState
}

// New creates a fingering from explicit string states.
func New(states ...StringState) Fingering {
	return Fingering{strings: states}
}

// Decode parses tab notation into a fingering with exactly
// stringCount strings. One token per string: 'x'/'X' muted, a bare
// digit 0-9 a fret, "(NN)" a fret of 10 or more. Separators (space,
// dash, comma) and anything unrecognized are skipped. Decode never
// fails: it consumes greedily from the left, stops once stringCount
// positions are filled, and pads short input with muted strings, so
// partial or garbled text from a caller mid-typing still yields a
// usable value.
func Decode(tab string, stringCount int) Fingering {
	states := make([]StringState, 0, stringCount)

	for i := 0; i < len(tab) && len(states) < stringCount; i++ {
		switch c := tab[i]; {
		case c == 'x' || c == 'X':
			states = append(states, Muted)
		case c >= '0' && c <= '9':
			states = append(states, StringState(c-'0'))
		case c == '(':
			fret := 0
			digits := 0
			for i+1 < len(tab) && tab[i+1] != ')' {
				i++
				if tab[i] >= '0' && tab[i] <= '9' {
					fret = fret*10 + int(tab[i]-'0')
					digits++
				}
			}
			if i+1 < len(tab) {
				i++ // consume ')'
			}
			// Frets that cannot fit the int8 state are garbage, not a
			// fret on any real neck; skip the token like any other
			// unrecognized input.
			if digits > 0 && fret <= math.MaxInt8 {
				states = append(states, StringState(fret))
			}
		}
	}

	for len(states) < stringCount {
		states = append(states, Muted)
	}
	return Fingering{strings: states}
}

// Encode renders tab notation: 'x' for muted, the digit for frets
// below 10, "(NN)" otherwise. Decode(Encode(f), n) round-trips for
// every representable fingering.
func (f Fingering) Encode() string {
	var sb strings.Builder
	for _, s := range f.strings {
		switch fret, played := s.Fret(); {
		case !played:
			sb.WriteByte('x')
		case fret < 10:
			sb.WriteByte(byte('0' + fret))
		default:
			sb.WriteString("(" + strconv.Itoa(fret) + ")")
		}
	}
	return sb.String()
}

func (f Fingering) String() string { return f.Encode() }

// Strings returns the per-string states in fingering order.
func (f Fingering) Strings() []StringState { return f.strings }

// StringCount returns the number of strings.
func (f Fingering) StringCount() int { return len(f.strings) }

// PlayedCount returns how many strings sound.
func (f Fingering) PlayedCount() int {
	count := 0
	for _, s := range f.strings {
		if s.Played() {
			count++
		}
	}
	return count
}

// FrettedPositions returns (string index, fret) pairs for strings
// fretted above the nut.
func (f Fingering) FrettedPositions() [][2]int {
	var positions [][2]int
	for i, s := range f.strings {
		if fret, played := s.Fret(); played && fret > 0 {
			positions = append(positions, [2]int{i, fret})
		}
	}
	return positions
}

// MinFret returns the lowest fretted (above-nut) fret, or 0 if
// nothing is fretted.
func (f Fingering) MinFret() int {
	min := 0
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret > 0 && (min == 0 || fret < min) {
			min = fret
		}
	}
	return min
}

// MaxFret returns the highest fret used, counting open strings as 0.
func (f Fingering) MaxFret() int {
	max := 0
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret > max {
			max = fret
		}
	}
	return max
}

// Position is the neck position of the voicing: the lowest fret used,
// or 0 when every played string is open.
func (f Fingering) Position() int { return f.MinFret() }

// FretSpan is the distance between the lowest and highest fretted
// positions; open strings don't stretch the hand and are excluded.
func (f Fingering) FretSpan() int {
	min, max := 0, 0
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret > 0 {
			if min == 0 || fret < min {
				min = fret
			}
			if fret > max {
				max = fret
			}
		}
	}
	if min == 0 {
		return 0
	}
	return max - min
}

// IsOpenPosition reports whether the voicing sits in the
// instrument's open position: at least one open string, and nothing
// above the open-position threshold.
func (f Fingering) IsOpenPosition(inst instrument.Instrument) bool {
	hasOpen := false
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret == 0 {
			hasOpen = true
			break
		}
	}
	return hasOpen && f.MaxFret() <= inst.OpenPositionThreshold()
}

// InteriorOpenCount counts open strings that fall strictly between
// the first and last fretted strings. They ring against fretted
// neighbors and demand precise muting.
func (f Fingering) InteriorOpenCount() int {
	first, last := -1, -1
	for i, s := range f.strings {
		if fret, played := s.Fret(); played && fret > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || last <= first {
		return 0
	}

	count := 0
	for _, s := range f.strings[first : last+1] {
		if fret, played := s.Fret(); played && fret == 0 {
			count++
		}
	}
	return count
}

// InteriorMuteCount counts muted strings strictly between the first
// and last played strings.
func (f Fingering) InteriorMuteCount() int {
	first, last := -1, -1
	for i, s := range f.strings {
		if s.Played() {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || last <= first {
		return 0
	}

	count := 0
	for _, s := range f.strings[first+1 : last] {
		if !s.Played() {
			count++
		}
	}
	return count
}

// fretGroups maps each above-nut fret to the string indices fretted
// there, in ascending string order.
func (f Fingering) fretGroups() map[int][]int {
	groups := make(map[int][]int)
	for i, s := range f.strings {
		if fret, played := s.Fret(); played && fret > 0 {
			groups[fret] = append(groups[fret], i)
		}
	}
	return groups
}

// consecutiveRuns splits sorted string indices into maximal runs of
// strictly consecutive strings.
func consecutiveRuns(indices []int) [][2]int {
	if len(indices) == 0 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	var runs [][2]int
	start := sorted[0]
	prev := sorted[0]
	for _, idx := range sorted[1:] {
		if idx != prev+1 {
			runs = append(runs, [2]int{start, prev})
			start = idx
		}
		prev = idx
	}
	runs = append(runs, [2]int{start, prev})
	return runs
}

// MinFingers returns the fewest fretting fingers that can realize the
// voicing. Strings at the same fret collapse into one finger per
// consecutive run (a barre); gaps need separate fingers. Open strings
// are free.
func (f Fingering) MinFingers() int {
	fingers := 0
	for _, indices := range f.fretGroups() {
		fingers += len(consecutiveRuns(indices))
	}
	return fingers
}

// RequiresBarre reports whether two or more strings sit at the lowest
// fretted position.
func (f Fingering) RequiresBarre() bool {
	min := f.MinFret()
	if min == 0 {
		return false
	}
	count := 0
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret == min {
			count++
		}
	}
	return count >= 2
}

// HasHighBarre reports an awkward barre above the base position: the
// longest consecutive same-fret run reaches the instrument's main
// barre threshold but sits above the minimum fret, forcing a
// ring/pinky barre.
func (f Fingering) HasHighBarre(inst instrument.Instrument) bool {
	return f.hasHighBarre(inst.MainBarreThreshold())
}

func (f Fingering) hasHighBarre(threshold int) bool {
	minFret := f.MinFret()
	if minFret == 0 {
		return false
	}

	longest, longestFret := 0, 0
	for fret, indices := range f.fretGroups() {
		for _, run := range consecutiveRuns(indices) {
			if length := run[1] - run[0] + 1; length > longest {
				longest, longestFret = length, fret
			}
		}
	}
	return longest >= threshold && longestFret > minFret
}

// IsPlayable reports whether the voicing fits the instrument's
// stretch and finger limits.
func (f Fingering) IsPlayable(inst instrument.Instrument) bool {
	return f.FretSpan() <= inst.MaxStretch() && f.MinFingers() <= inst.MaxFingers()
}

// Notes returns the sounding notes, one per played string, in string
// order.
func (f Fingering) Notes(inst instrument.Instrument) []theory.Note {
	tuning := inst.Tuning()
	notes := make([]theory.Note, 0, len(f.strings))
	for i, s := range f.strings {
		if i >= len(tuning) {
			break
		}
		if fret, played := s.Fret(); played {
			notes = append(notes, tuning[i].AddSemitones(fret))
		}
	}
	return notes
}

// PitchClasses returns the sounding pitch classes, one per played
// string, in string order.
func (f Fingering) PitchClasses(inst instrument.Instrument) []theory.PitchClass {
	notes := f.Notes(inst)
	pitches := make([]theory.PitchClass, len(notes))
	for i, n := range notes {
		pitches[i] = n.Pitch
	}
	return pitches
}

// UniquePitchClasses returns the distinct sounding pitch classes in
// ascending semitone order.
func (f Fingering) UniquePitchClasses(inst instrument.Instrument) []theory.PitchClass {
	seen := [12]bool{}
	for _, p := range f.PitchClasses(inst) {
		seen[p.Semitone()] = true
	}
	var unique []theory.PitchClass
	for semitone, present := range seen {
		if present {
			unique = append(unique, theory.PitchClass(semitone))
		}
	}
	return unique
}

// BassNote returns the lowest-sounding note honoring the instrument's
// bass string index, or false when nothing is played. Scanning starts
// at the bass string and walks up in fingering order; strings before
// the bass string (re-entrant drones) are a fallback only.
func (f Fingering) BassNote(inst instrument.Instrument) (theory.Note, bool) {
	tuning := inst.Tuning()
	bassIdx := inst.BassStringIndex()
	limit := len(f.strings)
	if len(tuning) < limit {
		limit = len(tuning)
	}
	if bassIdx > limit {
		bassIdx = limit
	}

	for i := bassIdx; i < limit; i++ {
		if fret, played := f.strings[i].Fret(); played {
			return tuning[i].AddSemitones(fret), true
		}
	}
	for i := 0; i < bassIdx; i++ {
		if fret, played := f.strings[i].Fret(); played {
			return tuning[i].AddSemitones(fret), true
		}
	}
	return theory.Note{}, false
}

// PlayabilityScore rates how easy the voicing is to fret, 0-100,
// higher is easier. Unplayable voicings score 0.
func (f Fingering) PlayabilityScore(inst instrument.Instrument) int {
	return f.playabilityScore(
		inst.MaxStretch(),
		inst.MaxFingers(),
		inst.MainBarreThreshold(),
		inst.OpenPositionThreshold(),
	)
}

func (f Fingering) playabilityScore(maxStretch, maxFingers, barreThreshold, openThreshold int) int {
	score := 100

	span := f.FretSpan()
	if span > maxStretch {
		return 0
	}
	score -= span * 10

	fingers := f.MinFingers()
	if fingers > maxFingers {
		return 0
	}
	// Fewer fingers means easier transitions. Using all four is
	// normal for barre chords, so the penalty stays mild.
	switch ratio := float64(fingers) / float64(maxFingers); {
	case ratio <= 0.25:
		score += 15
	case ratio <= 0.5:
		score += 10
	case ratio <= 0.75:
	default:
		score -= 5
	}

	if f.hasHighBarre(barreThreshold) {
		score -= 40
	}

	interiorOpens := f.InteriorOpenCount()
	score -= interiorOpens * 15

	hasOpen := false
	for _, s := range f.strings {
		if fret, played := s.Fret(); played && fret == 0 {
			hasOpen = true
			break
		}
	}
	if hasOpen && f.MaxFret() <= openThreshold && interiorOpens == 0 {
		score += 10
	}

	if min := f.MinFret(); min > 7 {
		score -= (min - 7) * 2
	}

	if muted := len(f.strings) - f.PlayedCount(); muted > 1 {
		score -= (muted - 1) * 5
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Builder assembles a fingering string by string; unset strings stay
// muted.
type Builder struct {
	strings []StringState
}

// NewBuilder starts a builder with every string muted.
func NewBuilder(stringCount int) *Builder {
	states := make([]StringState, stringCount)
	for i := range states {
		states[i] = Muted
	}
	return &Builder{strings: states}
}

// Fret sets a string to the given fret (0 = open).
func (b *Builder) Fret(stringIdx, fret int) *Builder {
	if stringIdx >= 0 && stringIdx < len(b.strings) {
		b.strings[stringIdx] = StringState(fret)
	}
	return b
}

// Mute marks a string unplayed.
func (b *Builder) Mute(stringIdx int) *Builder {
	if stringIdx >= 0 && stringIdx < len(b.strings) {
		b.strings[stringIdx] = Muted
	}
	return b
}

// Build returns the assembled fingering.
func (b *Builder) Build() Fingering {
	return Fingering{strings: append([]StringState(nil), b.strings...)}
}

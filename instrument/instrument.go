// Package instrument models fretted string instruments as a
// capability contract: tuning, fret range, stretch and finger limits,
// and the thresholds the generator and analyzer score against.
// Concrete instruments (Guitar, Ukulele, ConfigurableInstrument) and
// the CapoedInstrument decorator all satisfy the same interface, so
// everything downstream is instrument- and capo-agnostic.
package instrument

import (
	"github.com/RyanBlaney/chord-forge/theory"
)

// Instrument is the capability contract every fretted instrument
// satisfies. Tuning lists open-string notes in fingering order
// (string 0 = the string drawn topmost in tab), which for re-entrant
// tunings is not pitch order; BassStringIndex identifies the string
// whose open pitch is lowest.
type Instrument interface {
	// Name returns a human-readable instrument name.
	Name() string

	// Tuning returns the open-string notes in fingering order.
	Tuning() []theory.Note

	// MaxFret returns the highest playable fret. The usable fret
	// range is [0, MaxFret].
	MaxFret() int

	// MaxStretch returns the widest fret span one hand can cover.
	MaxStretch() int

	// StringCount returns the number of strings.
	StringCount() int

	// MaxFingers returns how many fretting fingers are available.
	MaxFingers() int

	// OpenPositionThreshold returns the highest fret still considered
	// "open position".
	OpenPositionThreshold() int

	// MainBarreThreshold returns the minimum string span for a barre
	// to count as a main barre rather than a mini barre.
	MainBarreThreshold() int

	// MinPlayedStrings returns the fewest strings a valid chord
	// voicing may sound.
	MinPlayedStrings() int

	// BassStringIndex returns the index of the string with the lowest
	// open pitch. For standard tunings this is 0; for re-entrant
	// tunings (ukulele, banjo) it is not.
	BassStringIndex() int

	// StringNames returns display names for each string, in fingering
	// order, for diagrams.
	StringNames() []string
}

// Shared defaults, mirrored by every concrete instrument unless it
// overrides them.
const defaultMaxFingers = 4
const defaultOpenPositionThreshold = 4

// defaultBarreThreshold is half the strings, minimum 2.
func defaultBarreThreshold(stringCount int) int {
	if t := stringCount / 2; t > 2 {
		return t
	}
	return 2
}

// defaultMinPlayed is half the strings, minimum 2.
func defaultMinPlayed(stringCount int) int {
	if m := stringCount / 2; m > 2 {
		return m
	}
	return 2
}

// lowestStringIndex finds the string with the lowest absolute open
// pitch. Never assume index 0: re-entrant tunings break that.
func lowestStringIndex(tuning []theory.Note) int {
	lowest := 0
	for i, note := range tuning {
		if note.MIDI() < tuning[lowest].MIDI() {
			lowest = i
		}
	}
	return lowest
}

// pitchNames derives string display names from the open pitches.
func pitchNames(tuning []theory.Note) []string {
	names := make([]string, len(tuning))
	for i, note := range tuning {
		names[i] = note.Pitch.SharpName()
	}
	return names
}

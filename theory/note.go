package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// PitchClass represents one of the 12 semitone residues in an octave
// (0=C, 1=C#/Db, ..., 11=B). Enharmonic equivalents share the same
// value; the sharp/flat spelling is a display concern, not identity.
type PitchClass int

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// PitchClassFromSemitone maps any semitone count onto a pitch class.
func PitchClassFromSemitone(semitone int) PitchClass {
	return PitchClass(((semitone % 12) + 12) % 12)
}

// ParsePitchClass parses a pitch class name like "C", "C#", "Db", "Ab".
func ParsePitchClass(s string) (PitchClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C":
		return C, nil
	case "C#", "CS", "DB":
		return CSharp, nil
	case "D":
		return D, nil
	case "D#", "DS", "EB":
		return DSharp, nil
	case "E":
		return E, nil
	case "F":
		return F, nil
	case "F#", "FS", "GB":
		return FSharp, nil
	case "G":
		return G, nil
	case "G#", "GS", "AB":
		return GSharp, nil
	case "A":
		return A, nil
	case "A#", "AS", "BB":
		return ASharp, nil
	case "B":
		return B, nil
	}
	return 0, &ParseError{Input: s, Offending: s, Kind: "note"}
}

// Semitone returns the semitone number of this pitch class (0-11).
func (p PitchClass) Semitone() int {
	return int(p)
}

// AddSemitones transposes the pitch class, wrapping around octave
// boundaries with modular arithmetic.
func (p PitchClass) AddSemitones(semitones int) PitchClass {
	return PitchClassFromSemitone(int(p) + semitones)
}

// DistanceTo returns the ascending semitone distance to another pitch
// class (0-11).
func (p PitchClass) DistanceTo(other PitchClass) int {
	return ((int(other) - int(p)) + 12) % 12
}

// SharpName returns the sharp spelling (e.g. "C#" rather than "Db").
func (p PitchClass) SharpName() string {
	return sharpNames[int(p)%12]
}

// FlatName returns the flat spelling (e.g. "Db" rather than "C#").
func (p PitchClass) FlatName() string {
	return flatNames[int(p)%12]
}

func (p PitchClass) String() string {
	return p.SharpName()
}

// Note is an octave-aware pitch. Octave 4 starts with middle C (C4).
type Note struct {
	Pitch  PitchClass `json:"pitch"`
	Octave int        `json:"octave"`
}

// NewNote creates a note from a pitch class and octave number.
func NewNote(pitch PitchClass, octave int) Note {
	return Note{Pitch: pitch, Octave: octave}
}

// NoteFromMIDI converts a MIDI note number (C4 = 60) to a Note.
func NoteFromMIDI(midi int) Note {
	return Note{
		Pitch:  PitchClassFromSemitone(midi % 12),
		Octave: midi/12 - 1,
	}
}

// ParseNote parses an octave-qualified note like "C4", "Ab3" or "F#5".
func ParseNote(s string) (Note, error) {
	trimmed := strings.TrimSpace(s)
	split := strings.IndexFunc(trimmed, func(r rune) bool {
		return r >= '0' && r <= '9' || r == '-'
	})
	if split <= 0 {
		return Note{}, &ParseError{Input: s, Offending: trimmed, Kind: "note"}
	}

	pitch, err := ParsePitchClass(trimmed[:split])
	if err != nil {
		return Note{}, err
	}
	octave, err := strconv.Atoi(trimmed[split:])
	if err != nil {
		return Note{}, &ParseError{Input: s, Offending: trimmed[split:], Kind: "note"}
	}
	return Note{Pitch: pitch, Octave: octave}, nil
}

// MIDI returns the MIDI note number of this note (C4 = 60).
func (n Note) MIDI() int {
	return (n.Octave+1)*12 + n.Pitch.Semitone()
}

// AddSemitones transposes the note by the given number of semitones,
// clamped to the MIDI range.
func (n Note) AddSemitones(semitones int) Note {
	midi := n.MIDI() + semitones
	if midi < 0 {
		midi = 0
	}
	if midi > 127 {
		midi = 127
	}
	return NoteFromMIDI(midi)
}

// DistanceTo returns the signed semitone distance to another note.
func (n Note) DistanceTo(other Note) int {
	return other.MIDI() - n.MIDI()
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Pitch, n.Octave)
}

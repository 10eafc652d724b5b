package instrument

import (
	"github.com/RyanBlaney/chord-forge/theory"
)

// Guitar is a standard 6-string guitar in EADGBE tuning with 24
// frets.
type Guitar struct {
	tuning []theory.Note
}

// NewGuitar returns a guitar in standard tuning.
func NewGuitar() *Guitar {
	return &Guitar{
		tuning: []theory.Note{
			theory.NewNote(theory.E, 2),
			theory.NewNote(theory.A, 2),
			theory.NewNote(theory.D, 3),
			theory.NewNote(theory.G, 3),
			theory.NewNote(theory.B, 3),
			theory.NewNote(theory.E, 4),
		},
	}
}

func (g *Guitar) Name() string              { return "Guitar" }
func (g *Guitar) Tuning() []theory.Note     { return g.tuning }
func (g *Guitar) MaxFret() int              { return 24 }
func (g *Guitar) MaxStretch() int           { return 4 }
func (g *Guitar) StringCount() int          { return len(g.tuning) }
func (g *Guitar) MaxFingers() int           { return defaultMaxFingers }
func (g *Guitar) OpenPositionThreshold() int { return defaultOpenPositionThreshold }
func (g *Guitar) MainBarreThreshold() int   { return defaultBarreThreshold(len(g.tuning)) }
func (g *Guitar) MinPlayedStrings() int     { return defaultMinPlayed(len(g.tuning)) }
func (g *Guitar) BassStringIndex() int      { return lowestStringIndex(g.tuning) }

// StringNames uses the convention of lowercase "e" for the high E
// string.
func (g *Guitar) StringNames() []string {
	return []string{"E", "A", "D", "G", "B", "e"}
}

// WithCapo returns a capoed view of this guitar.
func (g *Guitar) WithCapo(fret int) (*CapoedInstrument, error) {
	return NewCapoedInstrument(g, fret)
}

// Ukulele is a standard soprano/concert/tenor ukulele in re-entrant
// GCEA tuning: the G string (index 0) sounds higher than the C string
// next to it, so the bass string is index 1.
type Ukulele struct {
	tuning []theory.Note
}

// NewUkulele returns a ukulele in standard re-entrant tuning.
func NewUkulele() *Ukulele {
	return &Ukulele{
		tuning: []theory.Note{
			theory.NewNote(theory.G, 4),
			theory.NewNote(theory.C, 4),
			theory.NewNote(theory.E, 4),
			theory.NewNote(theory.A, 4),
		},
	}
}

func (u *Ukulele) Name() string          { return "Ukulele" }
func (u *Ukulele) Tuning() []theory.Note { return u.tuning }
func (u *Ukulele) MaxFret() int          { return 15 }

// MaxStretch is wider than guitar: the short scale makes stretches
// easier.
func (u *Ukulele) MaxStretch() int  { return 5 }
func (u *Ukulele) StringCount() int { return len(u.tuning) }
func (u *Ukulele) MaxFingers() int  { return defaultMaxFingers }

// OpenPositionThreshold extends further than guitar because of the
// shorter scale.
func (u *Ukulele) OpenPositionThreshold() int { return 5 }

// MainBarreThreshold: with 4 strings a 2-string barre already covers
// half the instrument.
func (u *Ukulele) MainBarreThreshold() int { return 2 }

// MinPlayedStrings allows single-note voicings; C major is commonly
// played as just "0003".
func (u *Ukulele) MinPlayedStrings() int { return 1 }

func (u *Ukulele) BassStringIndex() int { return lowestStringIndex(u.tuning) }

func (u *Ukulele) StringNames() []string { return pitchNames(u.tuning) }

// WithCapo returns a capoed view of this ukulele.
func (u *Ukulele) WithCapo(fret int) (*CapoedInstrument, error) {
	return NewCapoedInstrument(u, fret)
}

package instrument

import (
	"github.com/RyanBlaney/chord-forge/theory"
)

// CapoedInstrument decorates a base instrument with a capo: every
// open string is transposed up by the capo fret and the usable fret
// range shrinks by the same amount. It satisfies the full Instrument
// contract so the generator, analyzer and optimizer stay
// capo-agnostic; frets in fingerings are relative to the capo.
type CapoedInstrument struct {
	inner   Instrument
	fret    int
	tuning  []theory.Note
	maxFret int
}

// NewCapoedInstrument places a capo at the given fret. The fret must
// lie in [1, MaxFret-1]; a capo at the nut or at the last fret leaves
// no playable range and fails with InvalidCapoError.
func NewCapoedInstrument(inner Instrument, fret int) (*CapoedInstrument, error) {
	if fret < 1 || fret > inner.MaxFret()-1 {
		return nil, &InvalidCapoError{Fret: fret, Min: 1, Max: inner.MaxFret() - 1}
	}

	base := inner.Tuning()
	tuning := make([]theory.Note, len(base))
	for i, note := range base {
		tuning[i] = note.AddSemitones(fret)
	}

	return &CapoedInstrument{
		inner:   inner,
		fret:    fret,
		tuning:  tuning,
		maxFret: inner.MaxFret() - fret,
	}, nil
}

// Inner returns the wrapped instrument.
func (c *CapoedInstrument) Inner() Instrument { return c.inner }

// CapoFret returns the capo position on the wrapped instrument.
func (c *CapoedInstrument) CapoFret() int { return c.fret }

func (c *CapoedInstrument) Name() string          { return c.inner.Name() }
func (c *CapoedInstrument) Tuning() []theory.Note { return c.tuning }
func (c *CapoedInstrument) MaxFret() int          { return c.maxFret }
func (c *CapoedInstrument) MaxStretch() int       { return c.inner.MaxStretch() }
func (c *CapoedInstrument) StringCount() int      { return c.inner.StringCount() }
func (c *CapoedInstrument) MaxFingers() int       { return c.inner.MaxFingers() }

func (c *CapoedInstrument) OpenPositionThreshold() int { return c.inner.OpenPositionThreshold() }
func (c *CapoedInstrument) MainBarreThreshold() int    { return c.inner.MainBarreThreshold() }
func (c *CapoedInstrument) MinPlayedStrings() int      { return c.inner.MinPlayedStrings() }

// BassStringIndex is recomputed from the transposed tuning. A capo
// raises every string equally, so it matches the inner instrument,
// but deriving it keeps the invariant explicit.
func (c *CapoedInstrument) BassStringIndex() int { return lowestStringIndex(c.tuning) }

func (c *CapoedInstrument) StringNames() []string { return c.inner.StringNames() }

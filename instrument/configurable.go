package instrument

import (
	"fmt"

	"github.com/RyanBlaney/chord-forge/theory"
)

// ConfigurableInstrument is a fully data-driven instrument: every
// capability value is a field. It backs both the named presets below
// and user-supplied custom tunings.
type ConfigurableInstrument struct {
	name                  string
	tuning                []theory.Note
	maxFret               int
	maxStretch            int
	maxFingers            int
	openPositionThreshold int
	mainBarreThreshold    int
	minPlayedStrings      int
	stringNames           []string
}

func (c *ConfigurableInstrument) Name() string               { return c.name }
func (c *ConfigurableInstrument) Tuning() []theory.Note      { return c.tuning }
func (c *ConfigurableInstrument) MaxFret() int               { return c.maxFret }
func (c *ConfigurableInstrument) MaxStretch() int            { return c.maxStretch }
func (c *ConfigurableInstrument) StringCount() int           { return len(c.tuning) }
func (c *ConfigurableInstrument) MaxFingers() int            { return c.maxFingers }
func (c *ConfigurableInstrument) OpenPositionThreshold() int { return c.openPositionThreshold }
func (c *ConfigurableInstrument) MainBarreThreshold() int    { return c.mainBarreThreshold }
func (c *ConfigurableInstrument) MinPlayedStrings() int      { return c.minPlayedStrings }
func (c *ConfigurableInstrument) BassStringIndex() int       { return lowestStringIndex(c.tuning) }
func (c *ConfigurableInstrument) StringNames() []string      { return c.stringNames }

// WithCapo returns a capoed view of this instrument.
func (c *ConfigurableInstrument) WithCapo(fret int) (*CapoedInstrument, error) {
	return NewCapoedInstrument(c, fret)
}

// Builder assembles a ConfigurableInstrument. Unset capability values
// fall back to the shared defaults derived from the string count.
type Builder struct {
	inst ConfigurableInstrument
	err  error
}

// NewBuilder starts a builder with no fields set.
func NewBuilder() *Builder {
	return &Builder{}
}

// Name sets the display name.
func (b *Builder) Name(name string) *Builder {
	b.inst.name = name
	return b
}

// Tuning sets the open-string notes in fingering order.
func (b *Builder) Tuning(tuning ...theory.Note) *Builder {
	b.inst.tuning = tuning
	return b
}

// TuningFromNames parses a comma-free list of note names like
// "D2", "A2", "D3".
func (b *Builder) TuningFromNames(names ...string) *Builder {
	tuning := make([]theory.Note, 0, len(names))
	for _, name := range names {
		note, err := theory.ParseNote(name)
		if err != nil {
			b.err = err
			return b
		}
		tuning = append(tuning, note)
	}
	b.inst.tuning = tuning
	return b
}

// MaxFret sets the highest playable fret.
func (b *Builder) MaxFret(fret int) *Builder {
	b.inst.maxFret = fret
	return b
}

// MaxStretch sets the widest playable fret span.
func (b *Builder) MaxStretch(frets int) *Builder {
	b.inst.maxStretch = frets
	return b
}

// MaxFingers sets the available fretting fingers.
func (b *Builder) MaxFingers(fingers int) *Builder {
	b.inst.maxFingers = fingers
	return b
}

// OpenPositionThreshold sets the top fret of "open position".
func (b *Builder) OpenPositionThreshold(fret int) *Builder {
	b.inst.openPositionThreshold = fret
	return b
}

// MainBarreThreshold sets the minimum main-barre string span.
func (b *Builder) MainBarreThreshold(strings int) *Builder {
	b.inst.mainBarreThreshold = strings
	return b
}

// MinPlayedStrings sets the minimum sounded strings for a valid
// voicing.
func (b *Builder) MinPlayedStrings(strings int) *Builder {
	b.inst.minPlayedStrings = strings
	return b
}

// StringNames sets display names for diagrams.
func (b *Builder) StringNames(names ...string) *Builder {
	b.inst.stringNames = names
	return b
}

// Build validates and returns the instrument. At least 2 and at most
// 12 strings are required; string names, when given, must match the
// string count.
func (b *Builder) Build() (*ConfigurableInstrument, error) {
	if b.err != nil {
		return nil, b.err
	}
	inst := b.inst

	if len(inst.tuning) < 2 || len(inst.tuning) > 12 {
		return nil, fmt.Errorf("instrument must have between 2 and 12 strings, got %d", len(inst.tuning))
	}
	if inst.stringNames != nil && len(inst.stringNames) != len(inst.tuning) {
		return nil, fmt.Errorf("got %d string names for %d strings", len(inst.stringNames), len(inst.tuning))
	}

	if inst.name == "" {
		inst.name = "Custom"
	}
	if inst.maxFret == 0 {
		inst.maxFret = 24
	}
	if inst.maxStretch == 0 {
		inst.maxStretch = 4
	}
	if inst.maxFingers == 0 {
		inst.maxFingers = defaultMaxFingers
	}
	if inst.openPositionThreshold == 0 {
		inst.openPositionThreshold = defaultOpenPositionThreshold
	}
	if inst.mainBarreThreshold == 0 {
		inst.mainBarreThreshold = defaultBarreThreshold(len(inst.tuning))
	}
	if inst.minPlayedStrings == 0 {
		inst.minPlayedStrings = defaultMinPlayed(len(inst.tuning))
	}
	if inst.stringNames == nil {
		inst.stringNames = pitchNames(inst.tuning)
	}

	return &inst, nil
}

// NewCustom builds an instrument from a bare tuning, picking stretch,
// fret range and minimum played strings from the string count.
func NewCustom(tuning []theory.Note) (*ConfigurableInstrument, error) {
	var maxStretch, maxFret, minPlayed int
	switch n := len(tuning); {
	case n <= 4:
		maxStretch, maxFret, minPlayed = 5, 17, 1
	case n <= 8:
		maxStretch, maxFret, minPlayed = 4, 24, 3
	default:
		maxStretch, maxFret, minPlayed = 3, 22, 4
	}

	return NewBuilder().
		Name("Custom Tuning").
		Tuning(tuning...).
		MaxFret(maxFret).
		MaxStretch(maxStretch).
		MinPlayedStrings(minPlayed).
		Build()
}

// Named presets for common instruments and alternate guitar tunings.

// NewBass returns a 4-string bass guitar in EADG tuning.
func NewBass() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Bass").
		TuningFromNames("E1", "A1", "D2", "G2").
		MaxFret(20).
		MaxStretch(4).
		MinPlayedStrings(1).
		Build()
	return inst
}

// NewBass5 returns a 5-string bass in BEADG tuning.
func NewBass5() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("5-String Bass").
		TuningFromNames("B0", "E1", "A1", "D2", "G2").
		MaxFret(20).
		MaxStretch(4).
		MinPlayedStrings(1).
		Build()
	return inst
}

// NewMandolin returns a mandolin in GDAE tuning (courses in 5ths).
func NewMandolin() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Mandolin").
		TuningFromNames("G3", "D4", "A4", "E5").
		MaxFret(20).
		MaxStretch(5).
		MinPlayedStrings(2).
		Build()
	return inst
}

// NewBanjo returns a 5-string banjo in open-G gDGBD tuning. The drone
// string (index 0) is re-entrant: it sounds above the strings next to
// it.
func NewBanjo() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Banjo").
		TuningFromNames("G4", "D3", "G3", "B3", "D4").
		MaxFret(22).
		MaxStretch(4).
		StringNames("g", "D", "G", "B", "D").
		Build()
	return inst
}

// NewBaritoneUkulele returns a baritone ukulele in DGBE tuning.
func NewBaritoneUkulele() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Baritone Ukulele").
		TuningFromNames("D3", "G3", "B3", "E4").
		MaxFret(18).
		MaxStretch(5).
		OpenPositionThreshold(5).
		MinPlayedStrings(1).
		Build()
	return inst
}

// NewGuitar7 returns a 7-string guitar in BEADGBE tuning.
func NewGuitar7() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("7-String Guitar").
		TuningFromNames("B1", "E2", "A2", "D3", "G3", "B3", "E4").
		MaxFret(24).
		MaxStretch(4).
		StringNames("B", "E", "A", "D", "G", "B", "e").
		Build()
	return inst
}

// NewGuitarDropD returns a guitar in drop-D tuning.
func NewGuitarDropD() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Drop D Guitar").
		TuningFromNames("D2", "A2", "D3", "G3", "B3", "E4").
		MaxFret(24).
		MaxStretch(4).
		StringNames("D", "A", "D", "G", "B", "e").
		Build()
	return inst
}

// NewGuitarOpenG returns a guitar in open-G DGDGBD tuning.
func NewGuitarOpenG() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("Open G Guitar").
		TuningFromNames("D2", "G2", "D3", "G3", "B3", "D4").
		MaxFret(24).
		MaxStretch(4).
		Build()
	return inst
}

// NewGuitarDADGAD returns a guitar in DADGAD tuning.
func NewGuitarDADGAD() *ConfigurableInstrument {
	inst, _ := NewBuilder().
		Name("DADGAD Guitar").
		TuningFromNames("D2", "A2", "D3", "G3", "A3", "D4").
		MaxFret(24).
		MaxStretch(4).
		Build()
	return inst
}

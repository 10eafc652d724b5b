package fingering

// StandardShape is a well-known movable chord shape. The pattern
// holds one offset per string relative to the base (barre) position;
// -1 marks a muted string. The Am shape barred at fret 2 is Bm, at
// fret 3 Cm, and so on.
type StandardShape struct {
	Name    string
	Pattern []int8
}

// Match reports the base fret the fingering realizes this shape at,
// or false. Every zero-offset entry must sit at the same fret (the
// base); muted strings must line up exactly.
func (s StandardShape) Match(f Fingering) (int, bool) {
	states := f.Strings()
	if len(states) != len(s.Pattern) {
		return 0, false
	}

	base := -1
	for i, expected := range s.Pattern {
		if expected != 0 {
			continue
		}
		if fret, played := states[i].Fret(); played {
			if base < 0 {
				base = fret
			} else if base != fret {
				return 0, false
			}
		}
	}
	if base < 0 {
		base = f.MinFret()
	}

	for i, expected := range s.Pattern {
		fret, played := states[i].Fret()
		switch {
		case expected < 0 && played:
			return 0, false
		case expected >= 0 && !played:
			return 0, false
		case expected >= 0 && fret != base+int(expected):
			return 0, false
		}
	}
	return base, true
}

// Shape tables per instrument family, keyed by the instrument
// identifiers used in the registry. Patterns follow the common
// open-position voicings players learn first.
var (
	guitarShapes = []StandardShape{
		{Name: "Am", Pattern: []int8{-1, 0, 2, 2, 1, 0}},
		{Name: "A", Pattern: []int8{-1, 0, 2, 2, 2, 0}},
		{Name: "Em", Pattern: []int8{0, 2, 2, 0, 0, 0}},
		{Name: "E", Pattern: []int8{0, 2, 2, 1, 0, 0}},
		{Name: "C", Pattern: []int8{-1, 3, 2, 0, 1, 0}},
		{Name: "G", Pattern: []int8{3, 2, 0, 0, 0, 3}},
		{Name: "D", Pattern: []int8{-1, -1, 0, 2, 3, 2}},
		{Name: "Dm", Pattern: []int8{-1, -1, 0, 2, 3, 1}},
	}

	ukuleleShapes = []StandardShape{
		{Name: "A", Pattern: []int8{2, 1, 0, 0}},
		{Name: "Am", Pattern: []int8{2, 0, 0, 0}},
		{Name: "C", Pattern: []int8{0, 0, 0, 3}},
		{Name: "F", Pattern: []int8{2, 0, 1, 0}},
		{Name: "G", Pattern: []int8{0, 2, 3, 2}},
		{Name: "D", Pattern: []int8{2, 2, 2, 0}},
		{Name: "Dm", Pattern: []int8{2, 2, 1, 0}},
		{Name: "E", Pattern: []int8{4, 4, 4, 2}},
		{Name: "Em", Pattern: []int8{0, 4, 3, 2}},
		{Name: "Bb", Pattern: []int8{3, 2, 1, 1}},
	}

	mandolinShapes = []StandardShape{
		{Name: "G", Pattern: []int8{0, 0, 2, 3}},
		{Name: "C", Pattern: []int8{0, 2, 3, 0}},
		{Name: "D", Pattern: []int8{2, 0, 0, 2}},
		{Name: "A", Pattern: []int8{2, 2, 4, 5}},
		{Name: "E", Pattern: []int8{0, 4, 4, 2}},
		{Name: "F", Pattern: []int8{3, 5, 5, 3}},
		{Name: "Am", Pattern: []int8{2, 2, 0, 0}},
		{Name: "Em", Pattern: []int8{0, 4, 0, 2}},
		{Name: "Dm", Pattern: []int8{2, 0, 0, 1}},
		{Name: "Gm", Pattern: []int8{0, 0, 2, 1}},
	}

	banjoShapes = []StandardShape{
		{Name: "G", Pattern: []int8{0, 0, 0, 0, 0}},
		{Name: "C", Pattern: []int8{-1, 2, 0, 1, 2}},
		{Name: "C-alt", Pattern: []int8{0, 2, 0, 1, 2}},
		{Name: "D", Pattern: []int8{-1, 0, 0, 2, 4}},
		{Name: "D7", Pattern: []int8{-1, 0, 0, 2, 0}},
		{Name: "Em", Pattern: []int8{-1, 0, 0, 0, 2}},
		{Name: "Am", Pattern: []int8{-1, 2, 2, 0, 0}},
		{Name: "F", Pattern: []int8{-1, 2, 1, 0, 0}},
		{Name: "A", Pattern: []int8{-1, 0, 0, 0, 0}},
		{Name: "Bm", Pattern: []int8{-1, 2, 2, 1, 0}},
		{Name: "E", Pattern: []int8{-1, 2, 1, 0, 0}},
	}

	shapesByInstrument = map[string][]StandardShape{
		"Guitar":           guitarShapes,
		"Drop D Guitar":    guitarShapes,
		"Ukulele":          ukuleleShapes,
		"Baritone Ukulele": ukuleleShapes,
		"Mandolin":         mandolinShapes,
		"Banjo":            banjoShapes,
	}
)

// ShapesFor returns the standard shape table for an instrument name,
// or nil when none is known. Alternate guitar tunings other than drop
// D move the shapes, so they get no table.
func ShapesFor(instrumentName string) []StandardShape {
	return shapesByInstrument[instrumentName]
}

// MatchShape finds the first standard shape the fingering realizes on
// the named instrument, returning the shape name and base fret.
func MatchShape(f Fingering, instrumentName string) (string, int, bool) {
	for _, shape := range ShapesFor(instrumentName) {
		if base, ok := shape.Match(f); ok {
			return shape.Name, base, true
		}
	}
	return "", 0, false
}

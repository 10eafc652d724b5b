package theory

import (
	"strconv"
	"strings"
)

// ChordQuality identifies a named chord formula (major, minor 7th,
// dominant 13th, ...). Each quality maps to an ordered set of required
// intervals from the root plus a set of optional extensions.
type ChordQuality int

const (
	// Triads
	QualityMajor ChordQuality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented

	// Suspended
	QualitySus2
	QualitySus4

	// 7th chords
	QualityDominant7
	QualityMajor7
	QualityMinor7
	QualityMinorMajor7
	QualityDiminished7
	QualityHalfDiminished7

	// Extended chords
	QualityDominant9
	QualityMajor9
	QualityMinor9
	QualityDominant11
	QualityMinor11
	QualityDominant13
	QualityMajor13
	QualityMinor13

	// Altered dominants
	QualityDominant7Flat9
	QualityDominant7Sharp9
	QualityDominant7Flat5
	QualityDominant7Sharp5

	// Add chords
	QualityAdd9
	QualityMinorAdd9
	QualityAdd11

	// 6th chords
	QualityMajor6
	QualityMinor6

	qualityCount // sentinel
)

// AllChordQualities lists every known quality, in table order. The
// analyzer iterates this when testing root hypotheses.
func AllChordQualities() []ChordQuality {
	qualities := make([]ChordQuality, 0, int(qualityCount))
	for q := ChordQuality(0); q < qualityCount; q++ {
		qualities = append(qualities, q)
	}
	return qualities
}

// Formula returns the required and optional interval sets for this
// quality. The required set always includes the unison; the optional
// set holds tones conventionally dropped in compact voicings (the 5th
// and 11th of tall extended chords).
func (q ChordQuality) Formula() (required, optional []Interval) {
	switch q {
	case QualityMajor:
		return []Interval{Unison, MajorThird, PerfectFifth}, nil
	case QualityMinor:
		return []Interval{Unison, MinorThird, PerfectFifth}, nil
	case QualityDiminished:
		return []Interval{Unison, MinorThird, DiminishedFifth}, nil
	case QualityAugmented:
		return []Interval{Unison, MajorThird, AugmentedFifth}, nil
	case QualitySus2:
		return []Interval{Unison, MajorSecond, PerfectFifth}, nil
	case QualitySus4:
		return []Interval{Unison, PerfectFourth, PerfectFifth}, nil
	case QualityDominant7:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh}, nil
	case QualityMajor7:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorSeventh}, nil
	case QualityMinor7:
		return []Interval{Unison, MinorThird, PerfectFifth, MinorSeventh}, nil
	case QualityMinorMajor7:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorSeventh}, nil
	case QualityDiminished7:
		return []Interval{Unison, MinorThird, DiminishedFifth, DiminishedSeventh}, nil
	case QualityHalfDiminished7:
		return []Interval{Unison, MinorThird, DiminishedFifth, MinorSeventh}, nil
	case QualityDominant9:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth}, []Interval{PerfectFifth}
	case QualityMajor9:
		return []Interval{Unison, MajorThird, MajorSeventh, MajorNinth}, []Interval{PerfectFifth}
	case QualityMinor9:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth}, []Interval{PerfectFifth}
	case QualityDominant11:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth, PerfectEleventh}, []Interval{PerfectFifth}
	case QualityMinor11:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth, PerfectEleventh}, []Interval{PerfectFifth}
	case QualityDominant13:
		return []Interval{Unison, MajorThird, MinorSeventh, MajorNinth, MajorThirteenth}, []Interval{PerfectFifth, PerfectEleventh}
	case QualityMajor13:
		return []Interval{Unison, MajorThird, MajorSeventh, MajorNinth, MajorThirteenth}, []Interval{PerfectFifth, PerfectEleventh}
	case QualityMinor13:
		return []Interval{Unison, MinorThird, MinorSeventh, MajorNinth, MajorThirteenth}, []Interval{PerfectFifth, PerfectEleventh}
	case QualityDominant7Flat9:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh, MinorNinth}, nil
	case QualityDominant7Sharp9:
		return []Interval{Unison, MajorThird, PerfectFifth, MinorSeventh, AugmentedNinth}, nil
	case QualityDominant7Flat5:
		return []Interval{Unison, MajorThird, DiminishedFifth, MinorSeventh}, nil
	case QualityDominant7Sharp5:
		return []Interval{Unison, MajorThird, AugmentedFifth, MinorSeventh}, nil
	case QualityAdd9:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorNinth}, nil
	case QualityMinorAdd9:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorNinth}, nil
	case QualityAdd11:
		return []Interval{Unison, MajorThird, PerfectFifth, PerfectEleventh}, nil
	case QualityMajor6:
		return []Interval{Unison, MajorThird, PerfectFifth, MajorSixth}, nil
	case QualityMinor6:
		return []Interval{Unison, MinorThird, PerfectFifth, MajorSixth}, nil
	}
	return []Interval{Unison}, nil
}

// hasSeventhOrExtension reports whether the required set carries a 7th
// or a higher extension, which is what licenses dropping the 5th.
func (q ChordQuality) hasSeventhOrExtension() bool {
	required, _ := q.Formula()
	for _, iv := range required {
		if iv.Degree >= 7 {
			return true
		}
	}
	return false
}

// CanOmit reports whether the given interval may be omitted from a
// voicing without losing the chord's identity. The perfect 5th is
// omittable once a 7th or extension is required; everything else in
// the required set is essential.
func (q ChordQuality) CanOmit(iv Interval) bool {
	return iv == PerfectFifth && q.hasSeventhOrExtension()
}

// DisplayName returns the conventional suffix for this quality
// ("" for major, "m7" for minor 7th, ...).
func (q ChordQuality) DisplayName() string {
	switch q {
	case QualityMajor:
		return ""
	case QualityMinor:
		return "m"
	case QualityDiminished:
		return "dim"
	case QualityAugmented:
		return "aug"
	case QualitySus2:
		return "sus2"
	case QualitySus4:
		return "sus4"
	case QualityDominant7:
		return "7"
	case QualityMajor7:
		return "maj7"
	case QualityMinor7:
		return "m7"
	case QualityMinorMajor7:
		return "m(maj7)"
	case QualityDiminished7:
		return "dim7"
	case QualityHalfDiminished7:
		return "m7b5"
	case QualityDominant9:
		return "9"
	case QualityMajor9:
		return "maj9"
	case QualityMinor9:
		return "m9"
	case QualityDominant11:
		return "11"
	case QualityMinor11:
		return "m11"
	case QualityDominant13:
		return "13"
	case QualityMajor13:
		return "maj13"
	case QualityMinor13:
		return "m13"
	case QualityDominant7Flat9:
		return "7b9"
	case QualityDominant7Sharp9:
		return "7#9"
	case QualityDominant7Flat5:
		return "7b5"
	case QualityDominant7Sharp5:
		return "7#5"
	case QualityAdd9:
		return "add9"
	case QualityMinorAdd9:
		return "madd9"
	case QualityAdd11:
		return "add11"
	case QualityMajor6:
		return "6"
	case QualityMinor6:
		return "m6"
	}
	return "?"
}

func (q ChordQuality) String() string {
	if q == QualityMajor {
		return "major"
	}
	return q.DisplayName()
}

// AlterationKind distinguishes added tones from flattened/sharpened
// chord degrees.
type AlterationKind int

const (
	AlterationAdd AlterationKind = iota
	AlterationFlat
	AlterationSharp
)

// Alteration is a single altered/added-tone flag (add9, b5, #11)
// layered on top of a base quality's formula.
type Alteration struct {
	Kind   AlterationKind `json:"kind"`
	Degree int            `json:"degree"`
}

func (a Alteration) String() string {
	switch a.Kind {
	case AlterationFlat:
		return "b" + strconv.Itoa(a.Degree)
	case AlterationSharp:
		return "#" + strconv.Itoa(a.Degree)
	}
	return "add" + strconv.Itoa(a.Degree)
}

// interval returns the concrete interval the alteration denotes: the
// major/perfect interval at the degree, shifted for flat/sharp.
func (a Alteration) interval() Interval {
	quality := Major
	if isPerfectDegree(a.Degree) {
		quality = Perfect
	}
	switch a.Kind {
	case AlterationFlat:
		if quality == Perfect {
			return Interval{Diminished, a.Degree}
		}
		return Interval{Minor, a.Degree}
	case AlterationSharp:
		return Interval{Augmented, a.Degree}
	}
	return Interval{quality, a.Degree}
}

// ChordSpec is a fully resolved chord: root, quality, optional
// alterations and an optional slash bass. Only the parser (or the
// analyzer, for matches) builds these; they are never mutated after
// construction.
type ChordSpec struct {
	Root        PitchClass   `json:"root"`
	Quality     ChordQuality `json:"quality"`
	Alterations []Alteration `json:"alterations,omitempty"`
	Bass        *PitchClass  `json:"bass,omitempty"`
}

// NewChordSpec creates an unaltered chord from root and quality.
func NewChordSpec(root PitchClass, quality ChordQuality) ChordSpec {
	return ChordSpec{Root: root, Quality: quality}
}

// Intervals returns the chord's required and optional interval sets
// with alterations applied. A flat/sharp alteration replaces the
// formula interval at the same degree when present; an add appends.
// Both sets stay unique mod 12.
func (c ChordSpec) Intervals() (required, optional []Interval) {
	baseRequired, baseOptional := c.Quality.Formula()
	required = append([]Interval(nil), baseRequired...)
	optional = append([]Interval(nil), baseOptional...)

	for _, alt := range c.Alterations {
		iv := alt.interval()
		switch alt.Kind {
		case AlterationFlat, AlterationSharp:
			replaced := false
			for i, existing := range required {
				if existing.Degree == alt.Degree {
					required[i] = iv
					replaced = true
					break
				}
			}
			if !replaced {
				for i, existing := range optional {
					if existing.Degree == alt.Degree {
						optional[i] = iv
						replaced = true
						break
					}
				}
			}
			if !replaced {
				required = append(required, iv)
			}
		case AlterationAdd:
			required = append(required, iv)
		}
	}

	return dedupeIntervals(required), dedupeIntervals(optional)
}

// dedupeIntervals drops later intervals that duplicate an earlier one
// mod 12, preserving order.
func dedupeIntervals(intervals []Interval) []Interval {
	seen := make(map[int]bool, len(intervals))
	out := intervals[:0]
	for _, iv := range intervals {
		pc := ((iv.Semitones() % 12) + 12) % 12
		if !seen[pc] {
			seen[pc] = true
			out = append(out, iv)
		}
	}
	return out
}

// RequiredPitchClasses resolves the required intervals against the
// root.
func (c ChordSpec) RequiredPitchClasses() []PitchClass {
	required, _ := c.Intervals()
	return c.resolve(required)
}

// OptionalPitchClasses resolves the optional intervals against the
// root.
func (c ChordSpec) OptionalPitchClasses() []PitchClass {
	_, optional := c.Intervals()
	return c.resolve(optional)
}

// PitchClasses returns every chord tone, required then optional.
func (c ChordSpec) PitchClasses() []PitchClass {
	required, optional := c.Intervals()
	return c.resolve(append(required, optional...))
}

// CorePitchClasses returns the tones essential for chord identity:
// the required set minus anything the omission rule allows dropping.
func (c ChordSpec) CorePitchClasses() []PitchClass {
	required, _ := c.Intervals()
	core := make([]Interval, 0, len(required))
	for _, iv := range required {
		if !c.Quality.CanOmit(iv) {
			core = append(core, iv)
		}
	}
	return c.resolve(core)
}

func (c ChordSpec) resolve(intervals []Interval) []PitchClass {
	pitches := make([]PitchClass, 0, len(intervals))
	for _, iv := range intervals {
		pitches = append(pitches, c.Root.AddSemitones(iv.Semitones()))
	}
	return pitches
}

// Name renders the chord name with sharp root spelling.
func (c ChordSpec) Name() string {
	return c.name(c.Root.SharpName())
}

// FlatName renders the chord name with flat root spelling.
func (c ChordSpec) FlatName() string {
	return c.name(c.Root.FlatName())
}

func (c ChordSpec) name(root string) string {
	var sb strings.Builder
	sb.WriteString(root)
	sb.WriteString(c.Quality.DisplayName())
	for _, alt := range c.Alterations {
		sb.WriteString(alt.String())
	}
	if c.Bass != nil {
		sb.WriteString("/")
		sb.WriteString(c.Bass.SharpName())
	}
	return sb.String()
}

func (c ChordSpec) String() string {
	return c.Name()
}

// qualityTokens maps quality suffixes to qualities. Lookup is by
// exact match first, then longest-prefix with trailing alterations.
var qualityTokens = map[string]ChordQuality{
	"":        QualityMajor,
	"maj":     QualityMajor,
	"m":       QualityMinor,
	"min":     QualityMinor,
	"-":       QualityMinor,
	"dim":     QualityDiminished,
	"°":       QualityDiminished,
	"o":       QualityDiminished,
	"aug":     QualityAugmented,
	"+":       QualityAugmented,
	"sus2":    QualitySus2,
	"sus4":    QualitySus4,
	"sus":     QualitySus4,
	"7":       QualityDominant7,
	"maj7":    QualityMajor7,
	"m7":      QualityMinor7,
	"min7":    QualityMinor7,
	"m(maj7)": QualityMinorMajor7,
	"mmaj7":   QualityMinorMajor7,
	"minmaj7": QualityMinorMajor7,
	"dim7":    QualityDiminished7,
	"°7":      QualityDiminished7,
	"o7":      QualityDiminished7,
	"m7b5":    QualityHalfDiminished7,
	"ø":       QualityHalfDiminished7,
	"9":       QualityDominant9,
	"maj9":    QualityMajor9,
	"m9":      QualityMinor9,
	"min9":    QualityMinor9,
	"11":      QualityDominant11,
	"m11":     QualityMinor11,
	"min11":   QualityMinor11,
	"13":      QualityDominant13,
	"maj13":   QualityMajor13,
	"m13":     QualityMinor13,
	"min13":   QualityMinor13,
	"7b9":     QualityDominant7Flat9,
	"7#9":     QualityDominant7Sharp9,
	"7b5":     QualityDominant7Flat5,
	"7#5":     QualityDominant7Sharp5,
	"7aug":    QualityDominant7Sharp5,
	"add9":    QualityAdd9,
	"madd9":   QualityMinorAdd9,
	"m(add9)": QualityMinorAdd9,
	"add11":   QualityAdd11,
	"6":       QualityMajor6,
	"m6":      QualityMinor6,
	"min6":    QualityMinor6,
}

// ParseChord parses a chord name like "Cmaj7", "Abm", "G7/B" or
// "C7#11". The grammar is root letter, optional single accidental,
// optional quality token from the fixed table, then repeated
// alteration tokens (addN, bN, #N). Unknown tokens fail with a
// ParseError naming the offending substring; nothing is guessed.
func ParseChord(s string) (ChordSpec, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ChordSpec{}, &ParseError{Input: s, Offending: s, Kind: "chord"}
	}

	// Slash chord: parse the chord part, then the bass note.
	if slash := strings.IndexByte(trimmed, '/'); slash >= 0 {
		spec, err := ParseChord(trimmed[:slash])
		if err != nil {
			return ChordSpec{}, err
		}
		bass, err := ParsePitchClass(trimmed[slash+1:])
		if err != nil {
			return ChordSpec{}, &ParseError{Input: s, Offending: trimmed[slash+1:], Kind: "chord"}
		}
		spec.Bass = &bass
		return spec, nil
	}

	rootEnd := 1
	if len(trimmed) > 1 && (trimmed[1] == '#' || trimmed[1] == 'b') {
		rootEnd = 2
	}
	root, err := ParsePitchClass(trimmed[:rootEnd])
	if err != nil {
		return ChordSpec{}, &ParseError{Input: s, Offending: trimmed[:rootEnd], Kind: "chord"}
	}

	suffix := trimmed[rootEnd:]

	// Exact quality token match takes precedence.
	if quality, ok := lookupQuality(suffix); ok {
		return ChordSpec{Root: root, Quality: quality}, nil
	}

	// Longest quality prefix whose remainder parses as alterations.
	for cut := len(suffix); cut >= 0; cut-- {
		quality, ok := lookupQuality(suffix[:cut])
		if !ok {
			continue
		}
		alterations, err := parseAlterations(suffix[cut:])
		if err != nil {
			continue
		}
		return ChordSpec{Root: root, Quality: quality, Alterations: alterations}, nil
	}

	return ChordSpec{}, &ParseError{Input: s, Offending: suffix, Kind: "quality"}
}

func lookupQuality(token string) (ChordQuality, bool) {
	if q, ok := qualityTokens[token]; ok {
		return q, true
	}
	q, ok := qualityTokens[strings.ToLower(token)]
	return q, ok
}

// parseAlterations consumes a run of addN / bN / #N tokens. The whole
// string must be consumed or the parse fails.
func parseAlterations(s string) ([]Alteration, error) {
	if s == "" {
		return nil, nil
	}

	var alterations []Alteration
	rest := s
	for rest != "" {
		var kind AlterationKind
		switch {
		case strings.HasPrefix(rest, "add"):
			kind = AlterationAdd
			rest = rest[3:]
		case rest[0] == 'b':
			kind = AlterationFlat
			rest = rest[1:]
		case rest[0] == '#':
			kind = AlterationSharp
			rest = rest[1:]
		default:
			return nil, &ParseError{Input: s, Offending: rest, Kind: "quality"}
		}

		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return nil, &ParseError{Input: s, Offending: rest, Kind: "quality"}
		}
		degree, _ := strconv.Atoi(rest[:digits])
		if degree < 2 || degree > 13 {
			return nil, &ParseError{Input: s, Offending: rest[:digits], Kind: "quality"}
		}
		alterations = append(alterations, Alteration{Kind: kind, Degree: degree})
		rest = rest[digits:]
	}
	return alterations, nil
}

// Voicing classifies how completely a fingering realizes a chord.
type Voicing int

const (
	// VoicingFull contains every required and optional chord tone.
	VoicingFull Voicing = iota
	// VoicingCore contains every required tone but not all extensions.
	VoicingCore
	// VoicingJazzy is missing only tones the omission rule allows
	// dropping (typically the 5th of a 7th chord).
	VoicingJazzy
	// VoicingIncomplete is missing an essential tone. Excluded from
	// generator output unless explicitly requested.
	VoicingIncomplete
)

func (v Voicing) String() string {
	switch v {
	case VoicingFull:
		return "full"
	case VoicingCore:
		return "core"
	case VoicingJazzy:
		return "jazzy"
	case VoicingIncomplete:
		return "incomplete"
	}
	return "unknown"
}

// ParseVoicing parses a voicing name as used in CLI flags.
func ParseVoicing(s string) (Voicing, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return VoicingFull, true
	case "core":
		return VoicingCore, true
	case "jazzy", "jazz":
		return VoicingJazzy, true
	case "incomplete":
		return VoicingIncomplete, true
	}
	return 0, false
}

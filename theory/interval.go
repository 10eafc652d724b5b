package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// IntervalQuality labels an interval (perfect, major, minor,
// augmented, diminished). The label is used for display and parsing
// only; harmonic comparisons go through Semitones.
type IntervalQuality int

const (
	Perfect IntervalQuality = iota
	Major
	Minor
	Augmented
	Diminished
)

// Interval is a distance between two notes, expressed as a quality
// plus a 1-based diatonic degree (1=unison, 3=third, 5=fifth, ...).
// Two intervals are harmonically equivalent when their semitone
// counts agree mod 12, regardless of spelling.
type Interval struct {
	Quality IntervalQuality `json:"quality"`
	Degree  int             `json:"degree"`
}

// Common intervals used by the chord formula table.
var (
	Unison          = Interval{Perfect, 1}
	MinorSecond     = Interval{Minor, 2}
	MajorSecond     = Interval{Major, 2}
	MinorThird      = Interval{Minor, 3}
	MajorThird      = Interval{Major, 3}
	PerfectFourth   = Interval{Perfect, 4}
	Tritone         = Interval{Augmented, 4}
	DiminishedFifth = Interval{Diminished, 5}
	PerfectFifth    = Interval{Perfect, 5}
	AugmentedFifth  = Interval{Augmented, 5}
	MinorSixth      = Interval{Minor, 6}
	MajorSixth      = Interval{Major, 6}
	DiminishedSeventh = Interval{Diminished, 7}
	MinorSeventh    = Interval{Minor, 7}
	MajorSeventh    = Interval{Major, 7}
	Octave          = Interval{Perfect, 8}
	MinorNinth      = Interval{Minor, 9}
	MajorNinth      = Interval{Major, 9}
	AugmentedNinth  = Interval{Augmented, 9}
	PerfectEleventh = Interval{Perfect, 11}
	AugmentedEleventh = Interval{Augmented, 11}
	MinorThirteenth = Interval{Minor, 13}
	MajorThirteenth = Interval{Major, 13}
)

// baseSemitones returns the semitone count of the perfect/major
// interval at the given 1-based degree.
func baseSemitones(degree int) int {
	if degree > 8 {
		octaves := (degree - 1) / 7
		remainder := (degree-1)%7 + 1
		return octaves*12 + baseSemitones(remainder)
	}
	switch degree {
	case 1:
		return 0
	case 2:
		return 2
	case 3:
		return 4
	case 4:
		return 5
	case 5:
		return 7
	case 6:
		return 9
	case 7:
		return 11
	case 8:
		return 12
	}
	return 0
}

// isPerfectDegree reports whether the degree takes perfect (rather
// than major/minor) quality: unisons, fourths, fifths and their
// octave extensions.
func isPerfectDegree(degree int) bool {
	normalized := (degree-1)%7 + 1
	return normalized == 1 || normalized == 4 || normalized == 5
}

// Semitones returns the absolute semitone count of the interval.
func (iv Interval) Semitones() int {
	base := baseSemitones(iv.Degree)
	switch iv.Quality {
	case Minor, Diminished:
		return base - 1
	case Augmented:
		return base + 1
	}
	return base
}

// IntervalFromSemitones returns the conventional spelling for a
// semitone count reduced mod 12. Ambiguous distances default to the
// major/perfect family; the tritone becomes an augmented fourth.
func IntervalFromSemitones(semitones int) Interval {
	switch ((semitones % 12) + 12) % 12 {
	case 0:
		return Unison
	case 1:
		return MinorSecond
	case 2:
		return MajorSecond
	case 3:
		return MinorThird
	case 4:
		return MajorThird
	case 5:
		return PerfectFourth
	case 6:
		return Tritone
	case 7:
		return PerfectFifth
	case 8:
		return MinorSixth
	case 9:
		return MajorSixth
	case 10:
		return MinorSeventh
	default:
		return MajorSeventh
	}
}

// ParseInterval parses short notation like "M3", "P5", "m7", "d5".
func ParseInterval(s string) (Interval, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Interval{}, &ParseError{Input: s, Offending: s, Kind: "interval"}
	}

	var quality IntervalQuality
	switch trimmed[0] {
	case 'P', 'p':
		quality = Perfect
	case 'M':
		quality = Major
	case 'm':
		quality = Minor
	case 'A', 'a':
		quality = Augmented
	case 'd', 'D':
		quality = Diminished
	default:
		return Interval{}, &ParseError{Input: s, Offending: trimmed[:1], Kind: "interval"}
	}

	degree, err := strconv.Atoi(trimmed[1:])
	if err != nil || degree < 1 {
		return Interval{}, &ParseError{Input: s, Offending: trimmed[1:], Kind: "interval"}
	}
	return Interval{Quality: quality, Degree: degree}, nil
}

// ShortName returns compact notation like "M3", "P5", "m7".
func (iv Interval) ShortName() string {
	var q string
	switch iv.Quality {
	case Perfect:
		q = "P"
	case Major:
		q = "M"
	case Minor:
		q = "m"
	case Augmented:
		q = "A"
	case Diminished:
		q = "d"
	}
	return fmt.Sprintf("%s%d", q, iv.Degree)
}

// Name returns a spelled-out name like "Major 3rd" or "Perfect 5th".
func (iv Interval) Name() string {
	var q string
	switch iv.Quality {
	case Perfect:
		q = "Perfect"
	case Major:
		q = "Major"
	case Minor:
		q = "Minor"
	case Augmented:
		q = "Augmented"
	case Diminished:
		q = "Diminished"
	}

	var d string
	switch iv.Degree {
	case 1:
		d = "Unison"
	case 2:
		d = "2nd"
	case 3:
		d = "3rd"
	case 8:
		d = "Octave"
	default:
		d = fmt.Sprintf("%dth", iv.Degree)
	}
	return q + " " + d
}

func (iv Interval) String() string {
	return iv.ShortName()
}

// Package config holds the tunable scoring weights for fingering
// generation and progression transitions. The defaults encode the
// solo/band playing-context profiles; a YAML file can override any
// subset of them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringWeights are the additive terms of the generator's fingering
// score. Zero-valued terms are inert, which is how the solo and band
// profiles switch different terms on.
type ScoringWeights struct {
	// StringUsageBonus is added per played string.
	StringUsageBonus int `yaml:"string_usage_bonus"`
	// InteriorMutePenalty is charged per muted string strictly
	// between the lowest and highest played strings.
	InteriorMutePenalty int `yaml:"interior_mute_penalty"`
	// PositionDistancePenalty is charged per fret of distance from
	// the caller's preferred position.
	PositionDistancePenalty int `yaml:"position_distance_penalty"`

	// RootInBassBonus rewards voicings whose bass note is the root.
	RootInBassBonus int `yaml:"root_in_bass_bonus"`
	// FullVoicingBonus rewards voicings containing every chord tone.
	FullVoicingBonus int `yaml:"full_voicing_bonus"`
	// CoreVoicingBonus rewards voicings with all required tones.
	CoreVoicingBonus int `yaml:"core_voicing_bonus"`
	// CompactVoicingBonus rewards core and jazzy voicings alike; band
	// profiles use it to bias away from full voicings.
	CompactVoicingBonus int `yaml:"compact_voicing_bonus"`
	// JazzyWithoutRootPenalty is charged when an omission voicing
	// also lacks the root in the bass.
	JazzyWithoutRootPenalty int `yaml:"jazzy_without_root_penalty"`
	// AvoidLowStringsBonus rewards voicings that skip the two lowest
	// strings, leaving room for a bass player.
	AvoidLowStringsBonus int `yaml:"avoid_low_strings_bonus"`

	// PositionThreshold and HighPositionPenalty push results toward
	// the low neck when no preferred position is given.
	PositionThreshold   int `yaml:"position_threshold"`
	HighPositionPenalty int `yaml:"high_position_penalty"`

	// MidNeckMin/MidNeckMax define a preferred neck window;
	// MidNeckPenalty is charged per fret outside it. A zero MidNeckMax
	// disables the window.
	MidNeckMin     int `yaml:"mid_neck_min"`
	MidNeckMax     int `yaml:"mid_neck_max"`
	MidNeckPenalty int `yaml:"mid_neck_penalty"`
}

// TransitionWeights are the terms of the progression optimizer's
// transition score.
type TransitionWeights struct {
	// Base is the starting score of every transition.
	Base int `yaml:"base"`
	// MovementWeight rewards each finger saved from moving, counted
	// down from four.
	MovementWeight int `yaml:"movement_weight"`
	// AnchorBonus rewards each finger that stays planted.
	AnchorBonus int `yaml:"anchor_bonus"`
	// BarreSimilarityBonus applies when both fingerings use a barre.
	BarreSimilarityBonus int `yaml:"barre_similarity_bonus"`
	// OpenPositionBonus applies when both fingerings sit in open
	// position.
	OpenPositionBonus int `yaml:"open_position_bonus"`
	// StringCountSimilarityBonus applies when the played-string
	// counts differ by at most one.
	StringCountSimilarityBonus int `yaml:"string_count_similarity_bonus"`
	// DistancePenalty is charged per fret of neck-position distance.
	DistancePenalty int `yaml:"distance_penalty"`
}

// Weights bundles the per-context profiles.
type Weights struct {
	Solo           ScoringWeights    `yaml:"solo"`
	Band           ScoringWeights    `yaml:"band"`
	SoloTransition TransitionWeights `yaml:"solo_transition"`
	BandTransition TransitionWeights `yaml:"band_transition"`
}

// Default returns the built-in weight profiles. Solo favors full
// voicings with the root in the bass near the nut; band favors
// compact mid-neck voicings that stay off the low strings and
// penalizes position jumps harder.
func Default() *Weights {
	return &Weights{
		Solo: ScoringWeights{
			StringUsageBonus:        8,
			InteriorMutePenalty:     30,
			PositionDistancePenalty: 3,
			RootInBassBonus:         30,
			FullVoicingBonus:        20,
			CoreVoicingBonus:        5,
			JazzyWithoutRootPenalty: 15,
			PositionThreshold:       5,
			HighPositionPenalty:     5,
		},
		Band: ScoringWeights{
			StringUsageBonus:        8,
			InteriorMutePenalty:     30,
			PositionDistancePenalty: 3,
			RootInBassBonus:         5,
			FullVoicingBonus:        5,
			CompactVoicingBonus:     20,
			AvoidLowStringsBonus:    10,
			MidNeckMin:              3,
			MidNeckMax:              10,
			MidNeckPenalty:          3,
		},
		SoloTransition: TransitionWeights{
			Base:                       100,
			MovementWeight:             30,
			AnchorBonus:                20,
			BarreSimilarityBonus:       15,
			OpenPositionBonus:          10,
			StringCountSimilarityBonus: 5,
			DistancePenalty:            5,
		},
		BandTransition: TransitionWeights{
			Base:                       100,
			MovementWeight:             40,
			AnchorBonus:                20,
			BarreSimilarityBonus:       15,
			OpenPositionBonus:          10,
			StringCountSimilarityBonus: 5,
			DistancePenalty:            8,
		},
	}
}

// Load reads a YAML weights file over the defaults, so a file may
// override any subset of fields and inherit the rest.
func Load(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file: %w", err)
	}
	weights := Default()
	if err := yaml.Unmarshal(data, weights); err != nil {
		return nil, fmt.Errorf("parsing weights file %s: %w", path, err)
	}
	return weights, nil
}

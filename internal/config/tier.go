package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every accepted preset in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert, DifficultyFixed}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.6
	case DifficultyExpert:
		return 0.8
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Tier is the rule tier a game runs at. It decides which formations exist.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
	TierExpert
)

// TierForPreset maps a preset to its rule tier. The fixed preset plays by
// normal rules without progression.
func TierForPreset(preset DifficultyPreset) Tier {
	switch preset {
	case DifficultyEasy:
		return TierEasy
	case DifficultyHard:
		return TierHard
	case DifficultyExpert:
		return TierExpert
	default:
		return TierNormal
	}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierNormal:
		return "normal"
	case TierHard:
		return "hard"
	case TierExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// Tsunamis reports whether full-width blobs trigger at this tier.
func (t Tier) Tsunamis() bool { return t > TierEasy }

// BlackHoles reports whether enveloped blobs trigger at this tier.
func (t Tier) BlackHoles() bool { return t > TierEasy }

// Volcanoes reports whether volcanoes trigger at this tier.
func (t Tier) Volcanoes() bool { return t == TierExpert }

package config

import (
	_ "embed"
)

//go:embed defaults/merge.yaml
var defaultMergeYAML []byte

// DefaultMergeConfig returns the built-in merge ball configuration.
// It mirrors defaults/merge.yaml and is used when the embedded file cannot be parsed.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Field: FieldConfig{
			Width:         500,
			Height:        600,
			WallThickness: 20,
			TopHeight:     80,
		},
		Physics: PhysicsConfig{
			Gravity:     900,
			Restitution: 0.6,
			Friction:    0.1,
			Substeps:    4,
			Iterations:  6,
		},
		Balls: BallsConfig{
			Values:         []int{2, 4, 8},
			RadiusBase:     30,
			RadiusStep:     10,
			ImageSize:      200,
			TexturePattern: "num%d.png",
		},
		Spawn: SpawnConfig{
			Y:             80,
			CooldownTicks: 15,
			CursorStep:    10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "merge":
		return defaultMergeYAML
	default:
		return nil
	}
}

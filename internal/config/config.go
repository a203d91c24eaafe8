// Package config provides YAML-based game configuration loading for the
// merge ball game.
package config

import (
	"errors"
	"fmt"
)

// MergeConfig contains all configuration for the merge ball game.
type MergeConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Physics PhysicsConfig `yaml:"physics"`
	Balls   BallsConfig   `yaml:"balls"`
	Spawn   SpawnConfig   `yaml:"spawn"`
}

// FieldConfig defines the container in field units.
// Walls are centered on the field edges, so half of each wall is inside.
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	TopHeight     float64 `yaml:"top_height"` // Height of the top frame, centered on y=0
}

// PhysicsConfig defines simulation parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`     // Field units per second squared, pointing down
	Restitution float64 `yaml:"restitution"` // Bounciness of spawned and merged balls
	Friction    float64 `yaml:"friction"`    // Surface friction of spawned and merged balls
	Substeps    int     `yaml:"substeps"`    // Physics steps per game tick
	Iterations  int     `yaml:"iterations"`  // Contact solver passes per step
}

// BallsConfig defines ball values, sizing and visuals.
type BallsConfig struct {
	Values         []int   `yaml:"values"`          // Values the next ball is drawn from
	RadiusBase     float64 `yaml:"radius_base"`     // Radius of the smallest (value 2) ball
	RadiusStep     float64 `yaml:"radius_step"`     // Radius added per doubling
	ImageSize      float64 `yaml:"image_size"`      // Source sprite size in pixels
	TexturePattern string  `yaml:"texture_pattern"` // fmt pattern taking the value
}

// SpawnConfig defines where and how often balls are dropped.
type SpawnConfig struct {
	Y             float64 `yaml:"y"`              // Fixed drop height
	CooldownTicks int     `yaml:"cooldown_ticks"` // Minimum ticks between drops
	CursorStep    float64 `yaml:"cursor_step"`    // Field units moved per Left/Right press
}

// Validate checks that the config describes a playable game.
func (c MergeConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Field.WallThickness < 0 || c.Field.WallThickness >= c.Field.Width/2 {
		errs = append(errs, fmt.Errorf("wall_thickness %g out of range", c.Field.WallThickness))
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		errs = append(errs, fmt.Errorf("restitution must be in [0, 1], got %g", c.Physics.Restitution))
	}
	if c.Physics.Friction < 0 {
		errs = append(errs, fmt.Errorf("friction must not be negative, got %g", c.Physics.Friction))
	}
	if c.Physics.Substeps <= 0 {
		errs = append(errs, fmt.Errorf("substeps must be positive, got %d", c.Physics.Substeps))
	}
	if len(c.Balls.Values) == 0 {
		errs = append(errs, errors.New("balls.values must not be empty"))
	}
	for _, v := range c.Balls.Values {
		if !isBallValue(v) {
			errs = append(errs, fmt.Errorf("ball value %d is not a power of two >= 2", v))
		}
	}
	if c.Balls.RadiusBase <= 0 || c.Balls.RadiusStep < 0 {
		errs = append(errs, fmt.Errorf("invalid radius curve base=%g step=%g", c.Balls.RadiusBase, c.Balls.RadiusStep))
	}
	if c.Balls.ImageSize <= 0 {
		errs = append(errs, fmt.Errorf("image_size must be positive, got %g", c.Balls.ImageSize))
	}
	if c.Spawn.Y < 0 || c.Spawn.Y >= c.Field.Height {
		errs = append(errs, fmt.Errorf("spawn.y %g outside the field", c.Spawn.Y))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid merge config: %w", errors.Join(errs...))
	}
	return nil
}

// InnerLeft returns the x coordinate of the left wall's inner face.
func (c MergeConfig) InnerLeft() float64 {
	return c.Field.WallThickness / 2
}

// InnerRight returns the x coordinate of the right wall's inner face.
func (c MergeConfig) InnerRight() float64 {
	return c.Field.Width - c.Field.WallThickness/2
}

// isBallValue reports whether v is a power of two no smaller than 2.
func isBallValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

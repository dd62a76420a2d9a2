// Package config provides YAML-based maze configuration loading,
// difficulty presets and grid progression for endless play.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned by Validate for non-positive grid sizes.
var ErrInvalidGrid = errors.New("config: invalid grid")

// MazeConfig contains all configuration for the maze game.
type MazeConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Walls       WallsConfig       `yaml:"walls"`
	Ball        BallConfig        `yaml:"ball"`
	Goal        GoalConfig        `yaml:"goal"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Progression ProgressionConfig `yaml:"progression"`
}

// GridConfig is the logical maze size.
type GridConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// WallsConfig sizes the wall and border rectangles in world units
// (one unit is one terminal character).
type WallsConfig struct {
	Thickness       float64 `yaml:"thickness"`
	BorderThickness float64 `yaml:"border_thickness"`
}

// BallConfig defines the player's ball.
type BallConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"` // Fraction of the smaller cell side
	VelocityStep float64 `yaml:"velocity_step"` // Velocity change per key press, units/s
	MaxSpeed     float64 `yaml:"max_speed"`     // Speed cap in units/s, 0 = no cap
}

// GoalConfig defines the goal region.
type GoalConfig struct {
	Scale float64 `yaml:"scale"` // Fraction of one cell
}

// PhysicsConfig defines world parameters.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Vertical gravity while playing
	WinGravity  float64 `yaml:"win_gravity"`  // Vertical gravity once the maze breaks open
	FrictionAir float64 `yaml:"friction_air"` // Fraction of velocity lost per tick
	Restitution float64 `yaml:"restitution"`  // Bounciness of wall contacts
}

// ProgressionConfig controls how the grid grows in endless mode.
type ProgressionConfig struct {
	Enabled     bool `yaml:"enabled"`
	GrowRows    int  `yaml:"grow_rows"`
	GrowColumns int  `yaml:"grow_columns"`
	MaxRows     int  `yaml:"max_rows"`
	MaxColumns  int  `yaml:"max_columns"`
}

// Validate reports configuration values the game cannot run with.
func (c MazeConfig) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Columns <= 0 {
		return fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidGrid, c.Grid.Rows, c.Grid.Columns)
	}
	if c.Progression.Enabled && (c.Progression.MaxRows < c.Grid.Rows || c.Progression.MaxColumns < c.Grid.Columns) {
		return fmt.Errorf("%w: progression max %dx%d is below start grid %dx%d", ErrInvalidGrid,
			c.Progression.MaxRows, c.Progression.MaxColumns, c.Grid.Rows, c.Grid.Columns)
	}
	return nil
}

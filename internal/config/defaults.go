package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Grid: GridConfig{
			Rows:    13,
			Columns: 14,
		},
		Walls: WallsConfig{
			Thickness:       0.3,
			BorderThickness: 0.5,
		},
		Ball: BallConfig{
			RadiusFactor: 0.25,
			VelocityStep: 5,
			MaxSpeed:     60,
		},
		Goal: GoalConfig{
			Scale: 0.7,
		},
		Physics: PhysicsConfig{
			Gravity:     0,
			WinGravity:  30,
			FrictionAir: 0.01,
			Restitution: 0,
		},
		Progression: ProgressionConfig{
			Enabled:     false,
			GrowRows:    1,
			GrowColumns: 2,
			MaxRows:     24,
			MaxColumns:  40,
		},
	}
}

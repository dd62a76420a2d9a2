package main

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/config"
)

// loadMazeConfig resolves the maze configuration the way the game does and
// validates it, so a bad grid fails before the terminal is taken over.
// With progression set the config is also checked as endless mode uses it.
func loadMazeConfig(path, difficulty string, progression bool) (config.MazeConfig, error) {
	var preset config.DifficultyPreset
	if difficulty != "" {
		if preset = config.ParsePreset(difficulty); preset == "" {
			return config.MazeConfig{}, fmt.Errorf("unknown difficulty %q", difficulty)
		}
	}

	cfg, err := config.LoadMaze(path)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		config.ApplyMazePreset(&cfg, preset)
	}

	check := cfg
	if progression {
		check.Progression.Enabled = true
	}
	if err := check.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

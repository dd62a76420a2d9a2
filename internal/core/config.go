package core

import "time"

// RuntimeConfig is handed to Game.Reset. The screen size bounds the maze
// viewport and the seed drives generation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // platform substitutes the clock
	}
}

// Completion describes a solved maze. Games allocate a new Completion per
// solve, so the platform saves each one exactly once by pointer identity.
// Seq counts solves since the last Reset.
type Completion struct {
	Seq      int
	Rows     int
	Columns  int
	Level    int
	Ticks    uint64
	TickRate int
	Seed     int64
}

// Duration is the wall time the ticks represent.
func (c Completion) Duration() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Duration(c.Ticks) * time.Second / time.Duration(c.TickRate)
}

// GameState is what the platform reads after every tick.
type GameState struct {
	Score      int         // Mazes solved this session
	GameOver   bool        // Whether the current maze has ended
	Paused     bool        // Whether the game is paused
	Completion *Completion // Set once the current maze is solved
}

// StepResult wraps the state after one Step.
type StepResult struct {
	State GameState
}

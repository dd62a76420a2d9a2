package ballmaze

import "math"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateSolved      GameStateType = "solved"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Level     int // 1-indexed for display
	Rows      int
	Columns   int
	Solved    int
	OpenWalls int
	BallX     float64
	BallY     float64
	BallVX    float64
	BallVY    float64
	Dynamic   int // Bodies released by a solve
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateSolved
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:   g.tick,
		Level:  g.level + 1,
		Solved: g.solved,
		State:  state,
	}
	if g.maze != nil {
		snap.Rows = g.maze.Rows
		snap.Columns = g.maze.Columns
		snap.OpenWalls = g.maze.OpenWalls()
	}
	if g.ball != nil {
		snap.BallX, snap.BallY = g.ball.Position.X, g.ball.Position.Y
		snap.BallVX, snap.BallVY = g.ball.Velocity.X, g.ball.Velocity.Y
	}
	if g.world != nil {
		for _, b := range g.world.Bodies() {
			if !b.Static && b != g.ball {
				snap.Dynamic++
			}
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rows)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Columns)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Solved)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.OpenWalls) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallVX)
	h = h*31 + math.Float64bits(snap.BallVY)
	h = h*31 + uint64(snap.Dynamic) //#nosec G115 -- hash computation
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}

// Package ballmaze is the maze game: a generated perfect maze projected
// into physics geometry, a ball steered with the arrow keys, and a goal
// that breaks the maze open when the ball reaches it.
package ballmaze

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/geometry"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/physics"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Layout constants
const (
	hudRows       = 1 // Status line at the top
	minCellWidth  = 2 // Narrower cells cannot show a wall and the ball side by side
	minCellHeight = 1
)

// Mode represents the game mode.
type Mode int

const (
	ModeClassic Mode = iota // Same grid size for every maze
	ModeEndless             // Grid grows with every solved maze
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the maze game logic.
type Game struct {
	mode Mode

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.MazeConfig
	rng     *rand.Rand

	// Current maze
	maze   *maze.Maze
	layout geometry.Layout
	cellW  float64
	cellH  float64
	world  *physics.World
	ball   *physics.Body
	goal   *physics.Body

	// Progress
	level      int
	solved     int
	seq        int
	tick       uint64
	won        bool
	paused     bool
	completion *core.Completion

	tooSmall bool
	buildErr error
}

// New creates a new maze game with a fixed grid.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a maze game whose grid grows after every solve.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "maze_endless"
	}
	return "maze"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Maze (Endless)"
	}
	return "Maze"
}

// Reset loads configuration, reseeds the random source and builds the
// first maze.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadMaze(configPath)
	if err != nil {
		cfg = config.DefaultMazeConfig()
	}
	if difficultyPreset != "" {
		config.ApplyMazePreset(&cfg, difficultyPreset)
	}
	if g.mode == ModeEndless {
		cfg.Progression.Enabled = true
	}
	if cfg.Validate() != nil {
		cfg = config.DefaultMazeConfig()
		if g.mode == ModeEndless {
			cfg.Progression.Enabled = true
		}
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.level = 0
	g.solved = 0
	g.seq = 0
	g.paused = false

	g.build()
}

// build generates the maze for the current level and populates a fresh
// physics world from its projection.
func (g *Game) build() {
	g.clearWorld()
	g.maze = nil
	g.buildErr = nil

	grid := g.cfg.GridForLevel(g.level)
	if !g.fitCells(grid.Rows, grid.Columns) {
		return
	}

	m, err := maze.Generate(grid.Rows, grid.Columns, g.rng)
	if err != nil {
		g.buildErr = err
		return
	}
	g.maze = m
	g.populate()
}

// Resize lays the current maze out again for a new terminal size. Level
// and solve count are kept; the ball goes back to the start and the timer
// restarts.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	if g.rng == nil {
		g.Reset(runtime)
		return
	}
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH

	if g.maze == nil {
		g.build()
		return
	}

	g.clearWorld()
	if !g.fitCells(g.maze.Rows, g.maze.Columns) {
		g.maze = nil
		return
	}
	g.populate()
}

func (g *Game) clearWorld() {
	g.tick = 0
	g.won = false
	g.completion = nil
	g.world = nil
	g.ball = nil
	g.goal = nil
}

// viewport is the world area: the terminal minus the HUD, with one column
// and one row kept for the right and bottom borders.
func (g *Game) viewport() (width, height float64) {
	return float64(g.runtime.ScreenW - 1), float64(g.runtime.ScreenH - hudRows - 1)
}

// fitCells derives the cell size for a rows x columns grid and reports
// whether it is large enough to draw.
func (g *Game) fitCells(rows, columns int) bool {
	width, height := g.viewport()
	g.cellW, g.cellH = geometry.CellSize(width, height, rows, columns)
	g.tooSmall = width <= 0 || height <= 0 || g.cellW < minCellWidth || g.cellH < minCellHeight
	return !g.tooSmall
}

// populate projects g.maze and fills a new world with its bodies.
func (g *Game) populate() {
	width, height := g.viewport()

	opts := geometry.Options{
		Thickness:    g.cfg.Walls.Thickness,
		GoalScale:    g.cfg.Goal.Scale,
		RadiusFactor: g.cfg.Ball.RadiusFactor,
	}
	g.layout = geometry.ProjectMaze(g.maze, g.cellW, g.cellH, opts)

	g.world = physics.NewWorld(physics.Options{
		Width:       width,
		Height:      height,
		Gravity:     r2.Vec{Y: g.cfg.Physics.Gravity},
		FrictionAir: g.cfg.Physics.FrictionAir,
		Restitution: g.cfg.Physics.Restitution,
		MaxSpeed:    g.cfg.Ball.MaxSpeed,
	})

	for _, o := range geometry.Borders(width, height, g.cfg.Walls.BorderThickness) {
		g.world.AddRect(o.Label, o.X, o.Y, o.Width, o.Height, true)
	}
	for _, o := range g.layout.Obstacles {
		g.world.AddRect(o.Label, o.X, o.Y, o.Width, o.Height, true)
	}
	goal := g.layout.Goal
	g.goal = g.world.AddRect(goal.Label, goal.X, goal.Y, goal.Width, goal.Height, true)
	ball := g.layout.Ball
	g.ball = g.world.AddCircle(ball.Label, ball.X, ball.Y, ball.Radius)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.won {
		switch {
		case in.Has(core.ActionRestart):
			g.Reset(g.runtime)
			return core.StepResult{State: g.State()}
		case in.Has(core.ActionNext):
			g.level++
			g.build()
			return core.StepResult{State: g.State()}
		}
	} else if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if !g.won {
		g.applyInput(in)
	}

	for _, pair := range g.world.Step(g.dt()) {
		if g.won {
			break
		}
		if IsWinPair(pair.Labels()) {
			g.breakOpen()
		}
	}

	return core.StepResult{State: g.State()}
}

// applyInput nudges the ball's velocity by one step per directional
// press, each press touching a single axis.
func (g *Game) applyInput(in core.InputFrame) {
	step := g.cfg.Ball.VelocityStep
	v := g.ball.Velocity

	v.X += step * float64(in.Count(core.ActionRight)-in.Count(core.ActionLeft))
	v.Y += step * float64(in.Count(core.ActionDown)-in.Count(core.ActionUp))

	g.world.SetVelocity(g.ball, v)
}

// breakOpen records the solve, turns gravity on and releases every wall.
func (g *Game) breakOpen() {
	g.won = true
	g.solved++
	g.seq++
	g.completion = &core.Completion{
		Seq:      g.seq,
		Rows:     g.maze.Rows,
		Columns:  g.maze.Columns,
		Level:    g.level + 1,
		Ticks:    g.tick,
		TickRate: g.tickRate(),
		Seed:     g.runtime.Seed,
	}

	g.world.SetGravity(r2.Vec{Y: g.cfg.Physics.WinGravity})
	for _, wall := range g.world.BodiesByLabel(geometry.LabelWall) {
		g.world.SetStatic(wall, false)
	}
}

// IsWinPair reports whether a collision between bodies labelled a and b
// is the ball reaching the goal, in either order.
func IsWinPair(a, b string) bool {
	return (a == geometry.LabelGoal && b == geometry.LabelBall) ||
		(a == geometry.LabelBall && b == geometry.LabelGoal)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:      g.solved,
		GameOver:   g.won,
		Paused:     g.paused,
		Completion: g.completion,
	}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate <= 0 {
		return 60
	}
	return g.runtime.TickRate
}

func (g *Game) dt() float64 {
	return 1 / float64(g.tickRate())
}

// elapsed formats the current maze's play time as mm:ss.t.
func (g *Game) elapsed() string {
	tenths := g.tick * 10 / uint64(g.tickRate()) //#nosec G115 -- tick rate is positive
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

func init() {
	registry.Register("maze", func() registry.Game {
		return New()
	})
	registry.Register("maze_endless", func() registry.Game {
		return NewEndless()
	})
}

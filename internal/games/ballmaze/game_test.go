package ballmaze

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/geometry"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// solve places the ball on the goal and steps once so the contact starts.
func solve(t *testing.T, g *Game) {
	t.Helper()
	g.ball.Position = g.goal.Position
	g.ball.Velocity = r2.Vec{}
	g.Step(core.NewInputFrame())
	if !g.won {
		t.Fatal("ball on the goal should solve the maze")
	}
}

func TestIsWinPair(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{geometry.LabelGoal, geometry.LabelBall, true},
		{geometry.LabelBall, geometry.LabelGoal, true},
		{geometry.LabelWall, geometry.LabelBall, false},
		{geometry.LabelBall, geometry.LabelBorder, false},
		{geometry.LabelGoal, geometry.LabelGoal, false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := IsWinPair(tt.a, tt.b); got != tt.want {
			t.Errorf("IsWinPair(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestResetBuildsWorld(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	if g.tooSmall {
		t.Fatal("80x24 should fit the default grid")
	}
	if err := g.maze.Verify(); err != nil {
		t.Fatalf("generated maze invalid: %v", err)
	}

	walls := g.world.BodiesByLabel(geometry.LabelWall)
	if len(walls) != len(g.layout.Obstacles) {
		t.Errorf("world has %d walls, layout has %d", len(walls), len(g.layout.Obstacles))
	}
	if n := len(g.world.BodiesByLabel(geometry.LabelBorder)); n != 4 {
		t.Errorf("borders = %d, want 4", n)
	}
	if n := len(g.world.BodiesByLabel(geometry.LabelGoal)); n != 1 {
		t.Errorf("goals = %d, want 1", n)
	}
	if n := len(g.world.BodiesByLabel(geometry.LabelBall)); n != 1 {
		t.Errorf("balls = %d, want 1", n)
	}

	for _, b := range g.world.Bodies() {
		if b.Label != geometry.LabelBall && !b.Static {
			t.Errorf("%s body %d should start static", b.Label, b.ID)
		}
	}
	if g.world.Gravity() != (r2.Vec{}) {
		t.Errorf("gravity = %v, want zero before the solve", g.world.Gravity())
	}
}

func TestInputChangesOneAxis(t *testing.T) {
	tests := []struct {
		action core.Action
		want   r2.Vec
	}{
		{core.ActionUp, r2.Vec{Y: -5}},
		{core.ActionDown, r2.Vec{Y: 5}},
		{core.ActionLeft, r2.Vec{X: -5}},
		{core.ActionRight, r2.Vec{X: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			g := New()
			g.Reset(testConfig(7))

			in := core.NewInputFrame()
			in.Set(tt.action)
			g.applyInput(in)

			if g.ball.Velocity != tt.want {
				t.Errorf("velocity = %v, want %v", g.ball.Velocity, tt.want)
			}
		})
	}
}

func TestInputKeepsOtherAxis(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))
	g.ball.Velocity = r2.Vec{X: 3, Y: -2}

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	g.applyInput(in)

	want := r2.Vec{X: 8, Y: -2}
	if g.ball.Velocity != want {
		t.Errorf("velocity = %v, want %v", g.ball.Velocity, want)
	}
}

func TestRepeatedPressesAccumulate(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionRight)
	in.Set(core.ActionUp)
	in.Set(core.ActionDown)
	in.Set(core.ActionDown)
	g.applyInput(in)

	want := r2.Vec{X: 10, Y: 5}
	if g.ball.Velocity != want {
		t.Errorf("velocity = %v, want %v", g.ball.Velocity, want)
	}
}

func TestBallSpeedIsCapped(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	in := core.NewInputFrame()
	for range 100 {
		in.Set(core.ActionRight)
	}
	g.Step(in)

	if speed := r2.Norm(g.ball.Velocity); speed > g.cfg.Ball.MaxSpeed+1e-9 {
		t.Errorf("speed = %.2f, want at most %.2f", speed, g.cfg.Ball.MaxSpeed)
	}
}

func TestSolveReleasesWalls(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	solve(t, g)

	if got := g.world.Gravity(); got.Y != g.cfg.Physics.WinGravity || got.X != 0 {
		t.Errorf("gravity = %v, want (0, %v)", got, g.cfg.Physics.WinGravity)
	}
	for _, b := range g.world.BodiesByLabel(geometry.LabelWall) {
		if b.Static {
			t.Fatalf("wall %d still static after solve", b.ID)
		}
	}
	for _, label := range []string{geometry.LabelBorder, geometry.LabelGoal} {
		for _, b := range g.world.BodiesByLabel(label) {
			if !b.Static {
				t.Errorf("%s %d should stay static", label, b.ID)
			}
		}
	}

	state := g.State()
	if !state.GameOver || state.Score != 1 {
		t.Errorf("state = %+v, want solved once", state)
	}
	c := state.Completion
	if c == nil {
		t.Fatal("completion should be set after solve")
	}
	if c.Seq != 1 || c.Rows != 13 || c.Columns != 14 || c.Level != 1 || c.Ticks != 1 {
		t.Errorf("completion = %+v", *c)
	}
}

func TestWallsFallAfterSolve(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	solve(t, g)

	walls := g.world.BodiesByLabel(geometry.LabelWall)
	before := make([]float64, len(walls))
	for i, w := range walls {
		before[i] = w.Position.Y
	}

	for range 30 {
		g.Step(core.NewInputFrame())
	}

	_, height := g.world.Bounds()
	moved := false
	for i, w := range walls {
		if w.Position.Y < before[i]-1e-9 {
			t.Fatalf("wall %d moved up", w.ID)
		}
		if w.Position.Y > height-w.Height/2+1e-9 {
			t.Fatalf("wall %d fell through the floor", w.ID)
		}
		if w.Position.Y > before[i] {
			moved = true
		}
	}
	if !moved {
		t.Error("no wall fell under win gravity")
	}
}

func TestSolveIsReportedOnce(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	solve(t, g)

	for range 60 {
		g.Step(core.NewInputFrame())
	}
	if g.solved != 1 || g.completion.Seq != 1 {
		t.Errorf("solved = %d seq = %d, want 1 and 1", g.solved, g.completion.Seq)
	}
}

func TestInputIgnoredAfterSolve(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	solve(t, g)

	g.ball.Velocity = r2.Vec{}
	g.world.SetGravity(r2.Vec{})

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)

	if g.ball.Velocity.X != 0 {
		t.Errorf("input changed velocity after solve: %v", g.ball.Velocity)
	}
}

func TestNextMazeInEndless(t *testing.T) {
	g := NewEndless()
	g.Reset(testConfig(5))
	solve(t, g)

	in := core.NewInputFrame()
	in.Set(core.ActionNext)
	g.Step(in)

	snap := g.Snapshot()
	if snap.Level != 2 {
		t.Errorf("level = %d, want 2", snap.Level)
	}
	if snap.Rows != 14 || snap.Columns != 16 {
		t.Errorf("grid = %dx%d, want 14x16", snap.Rows, snap.Columns)
	}
	if snap.State != StatePlaying || snap.Tick != 0 || snap.Solved != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if g.State().Completion != nil {
		t.Error("completion should clear for the next maze")
	}
}

func TestNextMazeClassicKeepsGrid(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	solve(t, g)

	in := core.NewInputFrame()
	in.Set(core.ActionNext)
	g.Step(in)

	if g.maze.Rows != 13 || g.maze.Columns != 14 {
		t.Errorf("grid = %dx%d, want 13x14", g.maze.Rows, g.maze.Columns)
	}
}

func TestRestartResetsProgress(t *testing.T) {
	g := NewEndless()
	g.Reset(testConfig(5))
	solve(t, g)

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)

	if g.level != 0 || g.solved != 0 || g.won {
		t.Errorf("level=%d solved=%d won=%v after restart", g.level, g.solved, g.won)
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("P should pause")
	}

	tick := g.tick
	g.Step(core.NewInputFrame())
	if g.tick != tick {
		t.Error("paused game should not advance")
	}

	g.Step(in)
	if g.State().Paused {
		t.Error("second P should resume")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 6, TickRate: 60, Seed: 1})

	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Fatalf("state = %s, want %s", snap.State, StatePausedSmall)
	}
	g.Step(core.NewInputFrame())
	if g.tick != 0 {
		t.Error("too-small game should not advance")
	}

	screen := core.NewScreen(40, 6)
	g.Render(screen)
	if !strings.Contains(screen.String(), "small") {
		t.Error("too-small game should say so")
	}
}

func TestShrinkingClearsMaze(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	if g.maze == nil {
		t.Fatal("maze should be built at 80x24")
	}

	g.Resize(core.RuntimeConfig{ScreenW: 40, ScreenH: 6})

	if g.maze != nil || g.world != nil {
		t.Error("a too-small window should drop the maze and world")
	}
	if snap := g.Snapshot(); snap.Rows != 0 || snap.Columns != 0 || snap.State != StatePausedSmall {
		t.Errorf("snapshot = %+v", snap)
	}

	g.Resize(testConfig(1))
	if g.maze == nil || g.tooSmall {
		t.Error("growing again should build a maze")
	}
}

func TestBuildWithoutGridClearsMaze(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	g.cfg.Grid.Rows = 0
	g.build()

	if g.maze != nil {
		t.Error("stale maze kept after a failed build")
	}
	if snap := g.Snapshot(); snap.Rows != 0 {
		t.Errorf("snapshot rows = %d, want 0", snap.Rows)
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	g := NewEndless()
	g.Reset(testConfig(5))
	solve(t, g)

	in := core.NewInputFrame()
	in.Set(core.ActionNext)
	g.Step(in)
	rows, cols, open := g.maze.Rows, g.maze.Columns, g.maze.OpenWalls()
	g.Step(core.NewInputFrame())

	g.Resize(core.RuntimeConfig{ScreenW: 120, ScreenH: 36, TickRate: 60, Seed: 5})

	snap := g.Snapshot()
	if snap.Level != 2 || snap.Solved != 1 {
		t.Errorf("level=%d solved=%d, want 2 and 1", snap.Level, snap.Solved)
	}
	if snap.Rows != rows || snap.Columns != cols || snap.OpenWalls != open {
		t.Errorf("resize should keep the maze, got %dx%d", snap.Rows, snap.Columns)
	}
	if snap.Tick != 0 || g.world == nil {
		t.Errorf("resize should lay out a fresh world, tick=%d", snap.Tick)
	}
	if w, h := g.world.Bounds(); w != 119 || h != 34 {
		t.Errorf("world bounds = %vx%v, want 119x34", w, h)
	}
}

func TestResizeBeforeResetStartsGame(t *testing.T) {
	g := New()
	g.Resize(testConfig(2))

	if g.world == nil || g.maze == nil {
		t.Error("resize on a fresh game should build the first maze")
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(12345)

	g1 := NewEndless()
	g1.Reset(cfg)
	g2 := NewEndless()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := range 300 {
		input.Clear()
		switch {
		case i%40 == 5:
			input.Set(core.ActionRight)
		case i%40 == 15:
			input.Set(core.ActionDown)
		case i%40 == 25:
			input.Set(core.ActionLeft)
		case i%40 == 35:
			input.Set(core.ActionUp)
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestSeedChangesMaze(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(1))
	g2 := New()
	g2.Reset(testConfig(2))

	if g1.maze.String() == g2.maze.String() {
		t.Error("different seeds produced the same maze")
	}
}

func TestBallStaysInsideBorders(t *testing.T) {
	g := New()
	g.Reset(testConfig(11))

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.Set(core.ActionDown)
	for range 600 {
		g.Step(in)
	}

	width, height := g.world.Bounds()
	p := g.ball.Position
	if p.X < 0 || p.X > width || p.Y < 0 || p.Y > height {
		t.Errorf("ball escaped the viewport: %v", p)
	}
}

func TestRenderDrawsBodies(t *testing.T) {
	g := New()
	g.Reset(testConfig(4))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Maze") {
		t.Errorf("HUD = %q, want game title", screen.Row(0))
	}

	bx := int(g.ball.Position.X)
	by := int(g.ball.Position.Y) + hudRows
	if cell := screen.GetCell(bx, by); cell.Rune != ballGlyph || cell.Color != core.ColorBrightBlue {
		t.Errorf("ball cell = %+v", cell)
	}

	gx := int(g.goal.Position.X)
	gy := int(g.goal.Position.Y) + hudRows
	if cell := screen.GetCell(gx, gy); cell.Rune != goalGlyph {
		t.Errorf("goal cell = %+v", cell)
	}

	// Top-left corner belongs to the border.
	if cell := screen.GetCell(0, hudRows); cell.Rune != wallGlyph || cell.Color != core.ColorGray {
		t.Errorf("border cell = %+v", cell)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"maze", "maze_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID = %q, want %q", g.ID(), id)
		}
	}
}

package ballmaze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/geometry"
	"github.com/vovakirdan/tui-maze/internal/physics"
)

// Glyphs used for each body label.
const (
	wallGlyph = '█'
	goalGlyph = '▒'
	ballGlyph = '●'
)

// Render draws the current game state to the screen.
// World units map one-to-one onto terminal cells below the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if g.buildErr != nil {
		g.renderOverlay(dst, "Cannot build maze", g.buildErr.Error())
		return
	}
	if g.world == nil {
		return
	}

	// Ball last so it is never hidden behind a wall.
	for _, b := range g.world.Bodies() {
		if b.Shape == physics.ShapeRect {
			g.renderRect(dst, b)
		}
	}
	g.renderBall(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "Solved!", "N: next maze  R: restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen) {
	rows, cols := 0, 0
	if g.maze != nil {
		rows, cols = g.maze.Rows, g.maze.Columns
	}
	hud := fmt.Sprintf(" %s  %dx%d  Level %d  Time %s  Solved %d", g.Title(), rows, cols, g.level+1, g.elapsed(), g.solved)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)

	hint := "P pause  R restart  Q quit "
	if x := dst.Width() - len(hint); x > len(hud)+1 {
		dst.DrawTextColored(x, 0, hint, core.ColorGray)
	}
}

func (g *Game) renderRect(dst *core.Screen, b *physics.Body) {
	min, max := b.Min(), b.Max()
	r := core.SnapRect(min.X, min.Y+hudRows, max.X, max.Y+hudRows)

	switch b.Label {
	case geometry.LabelGoal:
		dst.DrawRect(r, goalGlyph, core.ColorGreen)
	case geometry.LabelBorder:
		dst.DrawRect(r, wallGlyph, core.ColorGray)
	default:
		dst.DrawRect(r, wallGlyph, core.ColorRed)
	}
}

func (g *Game) renderBall(dst *core.Screen) {
	if g.ball == nil {
		return
	}
	x := int(math.Floor(g.ball.Position.X))
	y := int(math.Floor(g.ball.Position.Y)) + hudRows
	if !core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows).Contains(x, y) {
		return
	}
	dst.SetColored(x, y, ballGlyph, core.ColorBrightBlue)
}

// renderOverlay draws a two-line message centered on the screen.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, " "+title+" ", core.ColorYellow)
	if subtitle != "" {
		dst.DrawTextCentered(y, " "+subtitle+" ", core.ColorWhite)
	}
}

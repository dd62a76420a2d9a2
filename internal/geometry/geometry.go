// Package geometry projects an abstract maze grid into continuous-space
// collision geometry: thin wall rectangles, a goal region and the ball's
// starting circle.
package geometry

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Body labels shared with the physics world and the win predicate.
const (
	LabelWall   = "Wall"
	LabelGoal   = "Goal"
	LabelBall   = "Ball"
	LabelBorder = "Border"
)

// Obstacle is an axis-aligned rectangle given by its centre and size.
type Obstacle struct {
	X      float64 `yaml:"x"` // Centre
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Label  string  `yaml:"label"`
}

// AgentSpec describes where the ball starts.
type AgentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Label  string  `yaml:"label"`
}

// Options tunes the projection.
type Options struct {
	Thickness    float64 // Wall thickness
	GoalScale    float64 // Goal size as a fraction of one cell
	RadiusFactor float64 // Ball radius as a fraction of the smaller cell side
}

// DefaultOptions returns the standard proportions: 0.7 cell goal and a
// ball radius of a quarter cell.
func DefaultOptions() Options {
	return Options{
		Thickness:    0.3,
		GoalScale:    0.7,
		RadiusFactor: 0.25,
	}
}

// Layout is the full static scene produced from a maze.
type Layout struct {
	Obstacles []Obstacle `yaml:"obstacles"`
	Ball      AgentSpec  `yaml:"ball"`
	Goal      Obstacle   `yaml:"goal"`
}

// CellSize derives the size of one cell from the viewport and grid.
func CellSize(width, height float64, rows, columns int) (cellWidth, cellHeight float64) {
	if rows <= 0 || columns <= 0 {
		return 0, 0
	}
	return width / float64(columns), height / float64(rows)
}

// Project turns the wall matrices into obstacles. Every closed horizontal
// entry becomes a divider along the bottom edge of the upper cell, every
// closed vertical entry a divider along the right edge of the left cell.
// Horizontal dividers are emitted first, both in row-major order.
func Project(vertical, horizontal [][]bool, rows, columns int, cellWidth, cellHeight float64, opts Options) Layout {
	var layout Layout

	for r, row := range horizontal {
		for c, open := range row {
			if open {
				continue
			}
			layout.Obstacles = append(layout.Obstacles, Obstacle{
				X:      float64(c)*cellWidth + cellWidth/2,
				Y:      float64(r)*cellHeight + cellHeight,
				Width:  cellWidth,
				Height: opts.Thickness,
				Label:  LabelWall,
			})
		}
	}

	for r, row := range vertical {
		for c, open := range row {
			if open {
				continue
			}
			layout.Obstacles = append(layout.Obstacles, Obstacle{
				X:      float64(c)*cellWidth + cellWidth,
				Y:      float64(r)*cellHeight + cellHeight/2,
				Width:  opts.Thickness,
				Height: cellHeight,
				Label:  LabelWall,
			})
		}
	}

	width := float64(columns) * cellWidth
	height := float64(rows) * cellHeight

	layout.Goal = Obstacle{
		X:      width - cellWidth/2,
		Y:      height - cellHeight/2,
		Width:  cellWidth * opts.GoalScale,
		Height: cellHeight * opts.GoalScale,
		Label:  LabelGoal,
	}

	layout.Ball = AgentSpec{
		X:      cellWidth / 2,
		Y:      cellHeight / 2,
		Radius: math.Min(cellWidth, cellHeight) * opts.RadiusFactor,
		Label:  LabelBall,
	}

	return layout
}

// ProjectMaze is Project applied to a generated maze.
func ProjectMaze(m *maze.Maze, cellWidth, cellHeight float64, opts Options) Layout {
	return Project(m.Vertical, m.Horizontal, m.Rows, m.Columns, cellWidth, cellHeight, opts)
}

// Borders frames a width x height viewport with four static rectangles
// centred on its edges.
func Borders(width, height, thickness float64) []Obstacle {
	return []Obstacle{
		{X: width / 2, Y: 0, Width: width, Height: thickness, Label: LabelBorder},
		{X: width / 2, Y: height, Width: width, Height: thickness, Label: LabelBorder},
		{X: 0, Y: height / 2, Width: thickness, Height: height, Label: LabelBorder},
		{X: width, Y: height / 2, Width: thickness, Height: height, Label: LabelBorder},
	}
}

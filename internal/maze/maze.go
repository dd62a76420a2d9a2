/*
Package maze generates perfect mazes over a rectangular grid.

A maze is described by two boolean matrices marking which internal walls
are open. Generation uses a randomized depth-first carve (the "recursive
backtracker"), so the open walls always form a spanning tree over the grid:
every cell is reachable from every other cell and there are no loops.
*/
package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a maze is requested with a
	// non-positive number of rows or columns.
	ErrInvalidDimension = errors.New("maze: invalid dimension")
)

// RandomSource yields uniformly distributed floats in [0, 1).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Cell identifies a grid cell by row and column.
type Cell struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

// Maze is the result of a generation run.
type Maze struct {
	Rows    int  `yaml:"rows"`
	Columns int  `yaml:"columns"`
	Start   Cell `yaml:"start"` // Cell the carve started from

	// Vertical is Rows x (Columns-1). Vertical[r][c] is true when the wall
	// between (r, c) and (r, c+1) is open.
	Vertical [][]bool `yaml:"vertical"`

	// Horizontal is (Rows-1) x Columns. Horizontal[r][c] is true when the
	// wall between (r, c) and (r+1, c) is open.
	Horizontal [][]bool `yaml:"horizontal"`
}

// direction of a neighbour relative to the current cell.
type direction uint8

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

type neighbor struct {
	row, column int
	dir         direction
}

// frame is one pending expansion on the carve stack.
type frame struct {
	row, column int
	neighbors   [4]neighbor
	next        int
}

// Generate carves a perfect maze of the given size.
// The random source picks the start cell and orders each cell's neighbours.
func Generate(rows, columns int, rng RandomSource) (*Maze, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidDimension, rows, columns)
	}

	m := newClosed(rows, columns)
	visited := make([]bool, rows*columns)

	m.Start = Cell{Row: randomIndex(rng, rows), Column: randomIndex(rng, columns)}

	stack := make([]frame, 0, rows*columns)
	stack = append(stack, m.enter(rng, visited, m.Start.Row, m.Start.Column))

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}

		n := top.neighbors[top.next]
		top.next++

		if n.row < 0 || n.row >= rows || n.column < 0 || n.column >= columns {
			continue
		}
		if visited[n.row*columns+n.column] {
			continue
		}

		m.openToward(top.row, top.column, n.dir)
		stack = append(stack, m.enter(rng, visited, n.row, n.column))
	}

	return m, nil
}

// enter marks a cell visited and returns its stack frame with the
// neighbours already shuffled.
func (m *Maze) enter(rng RandomSource, visited []bool, row, column int) frame {
	visited[row*m.Columns+column] = true

	f := frame{
		row:    row,
		column: column,
		neighbors: [4]neighbor{
			{row - 1, column, dirUp},
			{row + 1, column, dirDown},
			{row, column - 1, dirLeft},
			{row, column + 1, dirRight},
		},
	}
	Shuffle(rng, f.neighbors[:])
	return f
}

// openToward opens the wall between (row, column) and its neighbour in dir.
func (m *Maze) openToward(row, column int, dir direction) {
	switch dir {
	case dirLeft:
		m.Vertical[row][column-1] = true
	case dirRight:
		m.Vertical[row][column] = true
	case dirUp:
		m.Horizontal[row-1][column] = true
	case dirDown:
		m.Horizontal[row][column] = true
	}
}

// newClosed allocates a maze with every wall closed.
func newClosed(rows, columns int) *Maze {
	m := &Maze{
		Rows:       rows,
		Columns:    columns,
		Vertical:   make([][]bool, rows),
		Horizontal: make([][]bool, rows-1),
	}
	for r := range m.Vertical {
		m.Vertical[r] = make([]bool, columns-1)
	}
	for r := range m.Horizontal {
		m.Horizontal[r] = make([]bool, columns)
	}
	return m
}

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < m.Rows && c.Column >= 0 && c.Column < m.Columns
}

// Open reports whether a and b are adjacent cells with an open wall between them.
func (m *Maze) Open(a, b Cell) bool {
	if !m.InBounds(a) || !m.InBounds(b) {
		return false
	}
	switch {
	case a.Row == b.Row && b.Column == a.Column+1:
		return m.Vertical[a.Row][a.Column]
	case a.Row == b.Row && a.Column == b.Column+1:
		return m.Vertical[a.Row][b.Column]
	case a.Column == b.Column && b.Row == a.Row+1:
		return m.Horizontal[a.Row][a.Column]
	case a.Column == b.Column && a.Row == b.Row+1:
		return m.Horizontal[b.Row][a.Column]
	}
	return false
}

// Neighbors returns the cells reachable from c through a single open wall.
func (m *Maze) Neighbors(c Cell) []Cell {
	candidates := [4]Cell{
		{c.Row - 1, c.Column},
		{c.Row + 1, c.Column},
		{c.Row, c.Column - 1},
		{c.Row, c.Column + 1},
	}
	result := make([]Cell, 0, 4)
	for _, n := range candidates {
		if m.Open(c, n) {
			result = append(result, n)
		}
	}
	return result
}

// OpenWalls counts the open entries of both wall matrices.
func (m *Maze) OpenWalls() int {
	count := 0
	for _, row := range m.Vertical {
		for _, open := range row {
			if open {
				count++
			}
		}
	}
	for _, row := range m.Horizontal {
		for _, open := range row {
			if open {
				count++
			}
		}
	}
	return count
}

// randomIndex maps a draw from rng onto [0, n).
func randomIndex(rng RandomSource, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n { // guard against sources that return exactly 1.0
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

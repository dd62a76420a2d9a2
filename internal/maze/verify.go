package maze

import (
	"errors"
	"fmt"
)

// Verification errors returned by Verify.
var (
	ErrMalformed    = errors.New("maze: malformed wall matrices")
	ErrNotSpanning  = errors.New("maze: open wall count is not rows*columns-1")
	ErrCycle        = errors.New("maze: open walls form a cycle")
	ErrDisconnected = errors.New("maze: not every cell is reachable")
)

// Verify checks that the open walls form a spanning tree over the grid.
func (m *Maze) Verify() error {
	if m.Rows <= 0 || m.Columns <= 0 {
		return fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidDimension, m.Rows, m.Columns)
	}
	if err := m.checkShape(); err != nil {
		return err
	}

	cells := m.Rows * m.Columns
	if open := m.OpenWalls(); open != cells-1 {
		return fmt.Errorf("%w: got %d, want %d", ErrNotSpanning, open, cells-1)
	}

	uf := newUnionFind(cells)
	for r, row := range m.Vertical {
		for c, open := range row {
			if open && !uf.union(r*m.Columns+c, r*m.Columns+c+1) {
				return fmt.Errorf("%w: vertical wall (%d,%d)", ErrCycle, r, c)
			}
		}
	}
	for r, row := range m.Horizontal {
		for c, open := range row {
			if open && !uf.union(r*m.Columns+c, (r+1)*m.Columns+c) {
				return fmt.Errorf("%w: horizontal wall (%d,%d)", ErrCycle, r, c)
			}
		}
	}

	if reached := len(m.Reachable(m.Start)); reached != cells {
		return fmt.Errorf("%w: reached %d of %d cells", ErrDisconnected, reached, cells)
	}
	return nil
}

// Reachable flood-fills from start through open walls and returns every
// cell it reached, start included.
func (m *Maze) Reachable(start Cell) []Cell {
	if !m.InBounds(start) {
		return nil
	}

	seen := make([]bool, m.Rows*m.Columns)
	seen[start.Row*m.Columns+start.Column] = true
	queue := []Cell{start}
	for i := 0; i < len(queue); i++ {
		for _, n := range m.Neighbors(queue[i]) {
			idx := n.Row*m.Columns + n.Column
			if seen[idx] {
				continue
			}
			seen[idx] = true
			queue = append(queue, n)
		}
	}
	return queue
}

func (m *Maze) checkShape() error {
	if len(m.Vertical) != m.Rows || len(m.Horizontal) != m.Rows-1 {
		return ErrMalformed
	}
	for _, row := range m.Vertical {
		if len(row) != m.Columns-1 {
			return ErrMalformed
		}
	}
	for _, row := range m.Horizontal {
		if len(row) != m.Columns {
			return ErrMalformed
		}
	}
	return nil
}

// unionFind is a disjoint-set forest over flat cell indexes.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// union joins the sets of a and b. Returns false if they were already joined.
func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
	return true
}

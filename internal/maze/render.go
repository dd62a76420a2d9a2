package maze

import "strings"

// String renders the maze as ASCII art, one text row per grid row plus
// one per wall row. Closed walls are drawn with '|' and '---'.
func (m *Maze) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", m.Columns) + "\n")

	for r := 0; r < m.Rows; r++ {
		sb.WriteString("|")
		for c := 0; c < m.Columns; c++ {
			body := "   "
			if r == 0 && c == 0 {
				body = " o "
			} else if r == m.Rows-1 && c == m.Columns-1 {
				body = " X "
			}
			sb.WriteString(body)
			if c < m.Columns-1 && m.Vertical[r][c] {
				sb.WriteString(" ")
			} else {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")

		sb.WriteString("+")
		for c := 0; c < m.Columns; c++ {
			if r < m.Rows-1 && m.Horizontal[r][c] {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

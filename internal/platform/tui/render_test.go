package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)
	s.SetColored(0, 1, '●', core.ColorBrightBlue)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if got := ansi.Strip(lines[0]); got != "abcd  " {
		t.Errorf("row 0 = %q", got)
	}
	if got := ansi.Strip(lines[1]); got != "●     " {
		t.Errorf("row 1 = %q", got)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if styleFor(core.Color(200)).Render("x") != colorStyles[core.ColorDefault].Render("x") {
		t.Error("unknown colors should fall back to the default style")
	}
}

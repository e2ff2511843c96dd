package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func renderedLines(c *Canvas) []string {
	lines := strings.Split(c.Render(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(lines[i]), " ")
	}
	return lines
}

func TestCanvasDrawAt(t *testing.T) {
	t.Run("SplitsLines", func(t *testing.T) {
		c := NewCanvas(8, 4)
		c.DrawAt(0, 0, "A\r\nB")
		lines := renderedLines(c)
		if len(lines) < 2 || lines[0] != "A" || lines[1] != "B" {
			t.Fatalf("expected A and B on separate lines, got %q", lines)
		}
	})

	t.Run("OverlaysExistingCells", func(t *testing.T) {
		c := NewCanvas(10, 3)
		c.DrawAt(0, 0, "..........\n..........\n..........")
		c.DrawAt(3, 1, "XY\nZ")
		lines := renderedLines(c)
		if lines[1] != "...XY....." {
			t.Errorf("line 1: got %q", lines[1])
		}
		if lines[2] != "...Z......" {
			t.Errorf("line 2: got %q", lines[2])
		}
		if lines[0] != ".........." {
			t.Errorf("line 0 should be untouched, got %q", lines[0])
		}
	})

	t.Run("CropsAtEdges", func(t *testing.T) {
		c := NewCanvas(5, 2)
		c.DrawAt(3, 1, "abcdef\nghi")
		lines := renderedLines(c)
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
		}
		if lines[1] != "   ab" {
			t.Errorf("expected cropped row, got %q", lines[1])
		}
	})

	t.Run("NilCanvasSafe", func(t *testing.T) {
		var c *Canvas
		c.DrawAt(0, 0, "x")
		c.DrawCentered("x")
		if got := c.Render(); got != "" {
			t.Errorf("expected empty render, got %q", got)
		}
	})
}

func TestCanvasDrawCentered(t *testing.T) {
	const width, height = 20, 10
	c := NewCanvas(width, height)
	c.DrawCentered("AA\nBB")
	raw := strings.Split(c.Render(), "\n")

	row := (height - 2) / 2
	for i, want := range []string{"AA", "BB"} {
		line := ansi.Strip(raw[row+i])
		if idx := strings.Index(line, want); idx != 9 {
			t.Errorf("expected %q at column 9, got %d in %q", want, idx, line)
		}
	}
}

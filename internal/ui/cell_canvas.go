package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer so a block can
// be drawn on top of another (the options panel over the page body, the help
// modal over everything) and turns the result back into a frame string.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawAt writes block with its top-left corner at x,y. Each line of the
// block starts at column x; cells of the block replace what was there, and
// anything past the canvas edge is cropped.
func (c *Canvas) DrawAt(x, y int, block string) {
	if c == nil || block == "" {
		return
	}
	x, y = max(x, 0), max(y, 0)
	for i, line := range splitLines(block) {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// DrawCentered writes block centered on the canvas.
func (c *Canvas) DrawCentered(block string) {
	lines := splitLines(block)
	if c == nil || len(lines) == 0 {
		return
	}
	w := min(maxLineWidth(lines), c.width)
	x := (c.width - w) / 2
	y := (c.height - len(lines)) / 2
	c.DrawAt(x, y, block)
}

// Render returns the frame as newline-delimited lines and releases the
// screen.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

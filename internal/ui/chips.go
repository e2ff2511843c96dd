package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"rmselect/internal/ui/theme"
)

// Powerline glyphs for the rounded chip ends.
const (
	pillLeft  = "\ue0b6"
	pillRight = "\ue0b4"

	chipRemove    = "×"
	maxChipLabel  = 24
	minInputWidth = 10
	chipGap       = 1
)

// chipPlacement is where a chip landed in the wrapped input area, in cells
// relative to the area's top-left corner.
type chipPlacement struct {
	line, col, width int
	// removeCol is the column of the × glyph.
	removeCol int
}

// chipRow is the result of flowing chips and the text input into lines no
// wider than width, the way a wrapping flex row would.
type chipRow struct {
	chips     []chipPlacement
	inputLine int
	inputCol  int
	// inputWidth is how many cells the text input may use on its line.
	inputWidth int
	lines      int
}

// flowChips places chips of the given widths left to right, wrapping when a
// chip does not fit, and then puts the input after the last chip when at
// least minInputWidth cells remain, otherwise on a fresh line.
func flowChips(widths []int, width int) chipRow {
	if width < 1 {
		width = 1
	}
	var r chipRow
	line, col := 0, 0
	for _, w := range widths {
		need := w
		if col > 0 {
			need += chipGap
		}
		if col > 0 && col+need > width {
			line++
			col = 0
			need = w
		}
		start := col
		if col > 0 {
			start += chipGap
		}
		r.chips = append(r.chips, chipPlacement{
			line:      line,
			col:       start,
			width:     w,
			removeCol: start + w - 2,
		})
		col = start + w
	}

	r.inputLine, r.inputCol = line, col
	if col > 0 {
		r.inputCol = col + chipGap
	}
	if col > 0 && width-r.inputCol < minInputWidth {
		r.inputLine++
		r.inputCol = 0
	}
	r.inputWidth = width - r.inputCol
	r.lines = r.inputLine + 1
	return r
}

// chipLabel shortens long names so one chip never fills the row.
func chipLabel(label string) string {
	return ansi.Truncate(label, maxChipLabel, "…")
}

// renderChip draws a selected item as a pill ending in a remove glyph. The
// rendered width is ansi.StringWidth(chipLabel(label)) + 4.
func renderChip(label string) string {
	t := theme.Current()
	bg := t.Info
	capStyle := lipgloss.NewStyle().Foreground(bg)
	body := lipgloss.NewStyle().Foreground(t.Background).Background(bg)
	remove := body.Bold(true)
	return capStyle.Render(pillLeft) +
		body.Render(chipLabel(label)+" ") +
		remove.Render(chipRemove) +
		capStyle.Render(pillRight)
}

func chipWidth(label string) int {
	return ansi.StringWidth(chipLabel(label)) + 4
}

// layoutLines joins rendered chips and the input view into the wrapped lines
// described by row.
func layoutLines(row chipRow, chips []string, input string) []string {
	lines := make([]strings.Builder, row.lines)
	cols := make([]int, row.lines)
	put := func(line, col int, s string) {
		if pad := col - cols[line]; pad > 0 {
			lines[line].WriteString(strings.Repeat(" ", pad))
			cols[line] += pad
		}
		lines[line].WriteString(s)
		cols[line] += ansi.StringWidth(s)
	}
	for i, p := range row.chips {
		put(p.line, p.col, chips[i])
	}
	put(row.inputLine, row.inputCol, input)

	out := make([]string, row.lines)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return out
}

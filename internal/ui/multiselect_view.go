package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"rmselect/internal/selector"
	"rmselect/internal/ui/theme"
)

// trailWidth is the space right of the chips: a blank, the loading
// spinner, a blank and the open/close toggle.
const trailWidth = 4

const noResultsText = "🤷 No results found :/"

// selectLayout holds hit boxes in cells relative to the control's top-left
// corner. It is derived from the same numbers the views draw with.
type selectLayout struct {
	flow      chipRow
	flowWidth int
	box       selector.Rect
	toggle    selector.Rect
	removes   []selector.Rect
	panel     selector.Rect
	rows      []selector.Rect
}

func (m *MultiSelect[K, T]) layout() selectLayout {
	w := m.opts.Width
	var l selectLayout
	l.flowWidth = w - 4 - trailWidth

	sel := m.state.Selection()
	widths := make([]int, len(sel))
	for i, item := range sel {
		widths[i] = chipWidth(item.Label())
	}
	l.flow = flowChips(widths, l.flowWidth)

	// Content starts inside the border and one cell of padding.
	const padX, padY = 2, 1
	l.box = selector.Rect{Width: w, Height: l.flow.lines + 2}
	l.toggle = selector.Rect{X: padX + l.flowWidth + 1, Y: padY, Width: trailWidth - 1, Height: 1}
	for _, p := range l.flow.chips {
		l.removes = append(l.removes, selector.Rect{X: padX + p.removeCol, Y: padY + p.line, Width: 1, Height: 1})
	}

	top := l.box.Height
	switch {
	case m.state.PanelVisible():
		h := m.optionHeight()
		n := m.visibleRows()
		for i := 0; i < n; i++ {
			l.rows = append(l.rows, selector.Rect{X: 1, Y: top + 1 + i*h, Width: w - 2, Height: h})
		}
		height := 2 + n*h
		if m.panelFooter() != "" {
			height++
		}
		l.panel = selector.Rect{Y: top, Width: w, Height: height}
	case m.state.NoResults():
		l.panel = selector.Rect{Y: top, Width: w, Height: 3}
	}
	return l
}

func (m *MultiSelect[K, T]) optionHeight() int {
	return max(m.renderer.OptionHeight(), 1)
}

// Height is the number of lines View currently produces.
func (m *MultiSelect[K, T]) Height() int {
	l := m.layout()
	return l.box.Height + l.panel.Height
}

// View draws the input box with the panel below it.
func (m *MultiSelect[K, T]) View() string {
	in := m.InputView()
	if panel := m.PanelView(); panel != "" {
		return in + "\n" + panel
	}
	return in
}

// InputView draws the bordered box with chips, the text input, the spinner
// and the toggle button.
func (m *MultiSelect[K, T]) InputView() string {
	l := m.layout()
	t := theme.Current()

	sel := m.state.Selection()
	chips := make([]string, len(sel))
	for i, item := range sel {
		chips[i] = renderChip(item.Label())
	}

	lines := layoutLines(l.flow, chips, m.input.View())
	for i, line := range lines {
		line = fitWidth(line, l.flowWidth)
		if i == 0 {
			line += " " + m.spinnerCell() + " " + m.toggleGlyph()
		} else {
			line += strings.Repeat(" ", trailWidth)
		}
		lines[i] = line
	}

	border := t.Border
	if m.input.Focused() || m.state.PanelVisible() {
		border = t.BorderFocused
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// PanelView draws the option rows, or the no-results notice, or nothing.
func (m *MultiSelect[K, T]) PanelView() string {
	t := theme.Current()
	inner := m.opts.Width - 2
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused)

	if m.state.NoResults() {
		notice := lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true).Render(" " + noResultsText)
		return box.Render(fitWidth(notice, inner))
	}
	if !m.state.PanelVisible() {
		return ""
	}

	options := m.state.Options()
	h := m.optionHeight()
	var lines []string
	for i := m.offset; i < m.offset+m.visibleRows(); i++ {
		for _, line := range fitLines(m.renderer.RenderOption(m.props(options[i], i)), h) {
			lines = append(lines, fitWidth(line, inner))
		}
	}
	if footer := m.panelFooter(); footer != "" {
		lines = append(lines, fitWidth(lipgloss.NewStyle().Foreground(t.TextMuted).Render(footer), inner))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (m *MultiSelect[K, T]) panelFooter() string {
	if m.state.Loading() {
		return " " + m.spinner.View() + " Loading more…"
	}
	if rest := len(m.state.Options()) - m.offset - m.visibleRows(); rest > 0 {
		return fmt.Sprintf(" ▼ %d more", rest)
	}
	return ""
}

func (m *MultiSelect[K, T]) spinnerCell() string {
	if !m.state.Loading() {
		return " "
	}
	return m.spinner.View()
}

func (m *MultiSelect[K, T]) toggleGlyph() string {
	t := theme.Current()
	if !m.state.ToggleEnabled() {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Faint(true).Render("▾")
	}
	glyph := "▾"
	if m.state.PanelVisible() {
		glyph = "▴"
	}
	return lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).Render(glyph)
}

// fitWidth cuts or pads s to exactly w cells.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

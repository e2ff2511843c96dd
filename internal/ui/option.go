package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"rmselect/internal/selector"
	"rmselect/internal/ui/theme"
)

// RowAction is what a focused row asks the control to do with a key press.
type RowAction int

const (
	RowNone RowAction = iota
	RowToggle
	RowArrowDown
	RowArrowUp
)

func (a RowAction) String() string {
	switch a {
	case RowToggle:
		return "toggle"
	case RowArrowDown:
		return "down"
	case RowArrowUp:
		return "up"
	}
	return "none"
}

// OptionProps is everything a renderer gets for one row.
type OptionProps[T any] struct {
	SearchTerm string
	Option     T
	Selected   bool
	Focused    bool
	Width      int
}

// OptionRenderer draws option rows for a MultiSelect and interprets key
// presses while a row has focus. RenderOption must return exactly
// OptionHeight lines; the control pads or cuts anything else.
type OptionRenderer[T any] interface {
	RenderOption(props OptionProps[T]) string
	OptionHeight() int
	OptionKey(props OptionProps[T], msg tea.KeyMsg) RowAction
}

// LabelRenderer is the one-line renderer used when none is supplied: a
// checkbox followed by the option's label with the search term emphasized.
type LabelRenderer[K comparable, T selector.Option[K]] struct{}

func (LabelRenderer[K, T]) OptionHeight() int { return 1 }

func (LabelRenderer[K, T]) RenderOption(p OptionProps[T]) string {
	line := checkbox(p.Selected) + " " + highlightText(p.Option.Label(), p.SearchTerm, p.Width-2)
	return rowStyle(p.Focused).Width(p.Width).Render(line)
}

func (LabelRenderer[K, T]) OptionKey(_ OptionProps[T], msg tea.KeyMsg) RowAction {
	return defaultRowAction(msg)
}

func defaultRowAction(msg tea.KeyMsg) RowAction {
	switch {
	case msg.Type == tea.KeySpace, msg.String() == " ":
		return RowToggle
	case msg.Type == tea.KeyDown, msg.String() == "j":
		return RowArrowDown
	case msg.Type == tea.KeyUp, msg.String() == "k":
		return RowArrowUp
	}
	return RowNone
}

func checkbox(checked bool) string {
	if checked {
		return lipgloss.NewStyle().Foreground(theme.Current().Success).Bold(true).Render("☑")
	}
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted).Render("☐")
}

func rowStyle(focused bool) lipgloss.Style {
	t := theme.Current()
	s := lipgloss.NewStyle().Foreground(t.Text)
	if focused {
		s = s.Background(t.Background).Foreground(t.Secondary).Bold(true)
	}
	return s
}

// highlightText renders text with the first case-insensitive match of query
// emphasized, cut to width cells.
func highlightText(text, query string, width int) string {
	if width > 0 {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	emph := lipgloss.NewStyle().Foreground(theme.Current().Accent).Bold(true).Underline(true)
	var b strings.Builder
	for _, seg := range selector.Highlight(text, query) {
		if seg.Emphasized {
			b.WriteString(emph.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// fitLines forces s to exactly height lines.
func fitLines(s string, height int) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"rmselect/internal/ui/theme"
)

func styleHeader() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
}

func styleStatus(isErr bool) lipgloss.Style {
	t := theme.Current()
	if isErr {
		return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(t.Success)
}

func styleSelectedName() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Info).Bold(true)
}

// buildMarkdownRenderer returns a markdown-to-terminal renderer for the
// output format: "rich" follows the active theme, "light" suits light
// terminals, "plain" only wraps. Glamour failures fall back to wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "plain":
		return fallback
	case "", "rich", "dark":
		style = theme.Current().Markdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}

// Package theme holds the color palettes the selector and the demo
// application draw with.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named set of semantic colors. Every color is adaptive so the
// same palette works on light and dark terminals.
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor // focused borders, header
	Secondary lipgloss.AdaptiveColor // focused row, toggle button
	Accent    lipgloss.AdaptiveColor // emphasized match text

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor // checked boxes
	Info    lipgloss.AdaptiveColor // chips

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // options panel, overlays

	Border        lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor

	// Markdown names the glamour standard style for rich text on a dark
	// terminal.
	Markdown string
}

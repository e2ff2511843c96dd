package theme

import "github.com/charmbracelet/lipgloss"

// https://www.nordtheme.com/docs/colors-and-palettes
const (
	nord0  = "#2E3440" // Polar Night
	nord1  = "#3B4252"
	nord2  = "#434C5E"
	nord3  = "#4C566A"
	nord4  = "#D8DEE9" // Snow Storm
	nord5  = "#E5E9F0"
	nord6  = "#ECEFF4"
	nord7  = "#8FBCBB" // Frost
	nord8  = "#88C0D0"
	nord9  = "#81A1C1"
	nord10 = "#5E81AC"
	nord11 = "#BF616A" // Aurora
	nord12 = "#D08770"
	nord13 = "#EBCB8B"
	nord14 = "#A3BE8C"
	nord15 = "#B48EAD"
)

var Nord = Theme{
	Name:                "nord",
	Primary:             lipgloss.AdaptiveColor{Light: nord10, Dark: nord8},
	Secondary:           lipgloss.AdaptiveColor{Light: nord15, Dark: nord15},
	Accent:              lipgloss.AdaptiveColor{Light: nord12, Dark: nord13},
	Error:               lipgloss.AdaptiveColor{Light: nord11, Dark: nord11},
	Warning:             lipgloss.AdaptiveColor{Light: nord12, Dark: nord12},
	Success:             lipgloss.AdaptiveColor{Light: nord14, Dark: nord14},
	Info:                lipgloss.AdaptiveColor{Light: nord9, Dark: nord7},
	Text:                lipgloss.AdaptiveColor{Light: nord0, Dark: nord6},
	TextMuted:           lipgloss.AdaptiveColor{Light: nord1, Dark: "#8B95A7"},
	Background:          lipgloss.AdaptiveColor{Light: nord6, Dark: nord0},
	BackgroundSecondary: lipgloss.AdaptiveColor{Light: nord5, Dark: nord1},
	Border:              lipgloss.AdaptiveColor{Light: nord4, Dark: nord3},
	BorderFocused:       lipgloss.AdaptiveColor{Light: nord10, Dark: nord8},
	Markdown:            "dark",
}

func init() {
	Register(Nord)
}

package theme

import "github.com/charmbracelet/lipgloss"

// https://draculatheme.com/contribute
const (
	draculaBackground  = "#282a36"
	draculaCurrentLine = "#44475a"
	draculaForeground  = "#f8f8f2"
	draculaComment     = "#6272a4"
	draculaCyan        = "#8be9fd"
	draculaGreen       = "#50fa7b"
	draculaOrange      = "#ffb86c"
	draculaPink        = "#ff79c6"
	draculaPurple      = "#bd93f9"
	draculaRed         = "#ff5555"
	draculaYellow      = "#f1fa8c"
)

var Dracula = Theme{
	Name:                "dracula",
	Primary:             lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: draculaPurple},
	Secondary:           lipgloss.AdaptiveColor{Light: "#c2185b", Dark: draculaPink},
	Accent:              lipgloss.AdaptiveColor{Light: "#f9a825", Dark: draculaYellow},
	Error:               lipgloss.AdaptiveColor{Light: "#d32f2f", Dark: draculaRed},
	Warning:             lipgloss.AdaptiveColor{Light: "#ef6c00", Dark: draculaOrange},
	Success:             lipgloss.AdaptiveColor{Light: "#388e3c", Dark: draculaGreen},
	Info:                lipgloss.AdaptiveColor{Light: "#0097a7", Dark: draculaCyan},
	Text:                lipgloss.AdaptiveColor{Light: "#212121", Dark: draculaForeground},
	TextMuted:           lipgloss.AdaptiveColor{Light: "#757575", Dark: draculaComment},
	Background:          lipgloss.AdaptiveColor{Light: "#ffffff", Dark: draculaBackground},
	BackgroundSecondary: lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: draculaCurrentLine},
	Border:              lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: draculaComment},
	BorderFocused:       lipgloss.AdaptiveColor{Light: "#7e57c2", Dark: draculaPurple},
	Markdown:            "dracula",
}

func init() {
	Register(Dracula)
}

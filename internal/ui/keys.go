package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the application's shortcuts. The selector's own keys are
// listed too so the help overlay can show them; MultiSelect reads key
// messages directly.
type KeyMap struct {
	// Selector
	Down       key.Binding
	Up         key.Binding
	Toggle     key.Binding
	Close      key.Binding
	PopLast    key.Binding
	OpenPanel  key.Binding
	ScrollList key.Binding

	// Application
	Copy  key.Binding
	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the bindings rmselect ships with.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Open list / next option"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Previous option / back to input"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Select / unselect option"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close the list"),
		),
		PopLast: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "Remove last pick (empty search)"),
		),
		OpenPanel: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", "Show / hide the list"),
		),
		// mouse only; listed for the help overlay
		ScrollList: key.NewBinding(
			key.WithHelp("Wheel", "Scroll; the end loads more"),
		),

		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy selected names"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
	}
}

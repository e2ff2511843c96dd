// Demo program to try the MultiSelect control against a static option list.
package main

import (
	"fmt"
	"os"
	"strings"

	"rmselect/internal/selector"
	"rmselect/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

type label struct {
	id   int
	name string
}

func (l label) Key() int      { return l.id }
func (l label) Label() string { return l.name }

var sampleOptions = []label{
	{1, "backend"},
	{2, "frontend"},
	{3, "api"},
	{4, "urgent"},
	{5, "bug"},
	{6, "feature"},
	{7, "security"},
	{8, "performance"},
	{9, "documentation"},
	{10, "testing"},
	{11, "infrastructure"},
	{12, "design"},
}

type (
	filterMsg    struct{ term string }
	changedMsg   struct{ items []label }
	scrollEndMsg struct{}
)

const (
	demoMaxSelectable = 3
	// title, blank line
	demoOriginY = 2
)

type model struct {
	sel    *ui.MultiSelect[int, label]
	hub    *selector.PointerHub
	log    []string
	picked []label
}

func initialModel() *model {
	hub := selector.NewPointerHub()
	sel := ui.NewMultiSelect(ui.Options[int, label]{
		Options:       sampleOptions,
		MaxSelectable: demoMaxSelectable,
		OnChange: func(items []label) tea.Cmd {
			return func() tea.Msg { return changedMsg{items: items} }
		},
		OnInputChange: func(term string) tea.Cmd {
			return func() tea.Msg { return filterMsg{term: term} }
		},
		OnScrollEnd: func() tea.Cmd {
			return func() tea.Msg { return scrollEndMsg{} }
		},
		Renderer:    ui.LabelRenderer[int, label]{},
		Width:       50,
		MaxVisible:  5,
		Placeholder: "Type to filter...",
		Pointer:     hub,
	})
	sel.SetOrigin(0, demoOriginY)
	return &model{sel: sel, hub: hub}
}

func (m *model) Init() tea.Cmd {
	return m.sel.Init()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.sel.Close()
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel() {
			m.hub.Dispatch(selector.PointerEvent{X: msg.X, Y: msg.Y})
		}

	case filterMsg:
		m.addLog(fmt.Sprintf("Search: %q", msg.term))
		return m, m.sel.SetOptions(filterLabels(sampleOptions, msg.term), false)

	case changedMsg:
		m.picked = msg.items
		m.addLog(fmt.Sprintf("Selection: %d item(s)", len(msg.items)))
		return m, nil

	case scrollEndMsg:
		m.addLog("Reached the end of the list")
		return m, nil
	}

	return m, m.sel.Update(msg)
}

// filterLabels keeps the options that fuzzily match term, best match first.
func filterLabels(all []label, term string) []label {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}
	targets := make([]string, len(all))
	for i, l := range all {
		targets[i] = strings.ToLower(l.name)
	}
	matches := fuzzy.Find(term, targets)
	out := make([]label, 0, len(matches))
	for _, match := range matches {
		out = append(out, all[match.Index])
	}
	return out
}

func (m *model) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 8 {
		m.log = m.log[1:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	chipsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

func (m *model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("MultiSelect Demo"))
	s.WriteString("\n\n")
	s.WriteString(m.sel.View())
	s.WriteString("\n")

	names := make([]string, 0, len(m.picked))
	for _, l := range m.picked {
		names = append(names, l.name)
	}
	s.WriteString(chipsStyle.Render(fmt.Sprintf("Selected (%d/%d): %s", len(m.picked), demoMaxSelectable, strings.Join(names, ", "))))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↓/↑ move • space toggle • esc close • backspace remove last • ctrl+c quit"))
	s.WriteString("\n\n")

	for _, entry := range m.log {
		s.WriteString(logStyle.Render("  " + entry))
		s.WriteString("\n")
	}
	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}

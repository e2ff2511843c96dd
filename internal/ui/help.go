package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"rmselect/internal/ui/theme"
)

type helpSection struct {
	title string
	rows  [][]string // [keys, description]
}

func helpRows(bindings ...key.Binding) [][]string {
	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		rows = append(rows, []string{b.Help().Key, b.Help().Desc})
	}
	return rows
}

func helpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "SELECTOR",
			rows: helpRows(keys.Down, keys.Up, keys.Toggle, keys.Close,
				keys.PopLast, keys.OpenPanel, keys.ScrollList),
		},
		{
			title: "APPLICATION",
			rows:  helpRows(keys.Copy, keys.Theme, keys.Help, keys.Quit),
		},
	}
}

// renderHelpOverlay builds the help modal; the caller centers it.
func renderHelpOverlay(keys KeyMap) string {
	t := theme.Current()
	sections := helpSections(keys)

	blocks := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			blocks = append(blocks, "")
		}
		blocks = append(blocks, renderHelpSectionTable(s))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("✦ RMSELECT HELP ✦")
	dividerWidth := max(lipgloss.Width(body), 40)
	divider := lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("─", dividerWidth))
	footer := lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true).Render("Press F1 or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, divider, "", body, "", footer)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(content)
}

func renderHelpSectionTable(section helpSection) string {
	th := theme.Current()
	keyStyle := lipgloss.NewStyle().Foreground(th.Info).Bold(true).Width(10)
	descStyle := lipgloss.NewStyle().Foreground(th.Text)

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return descStyle
		}).
		Rows(section.rows...)

	header := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true).Render(section.title)
	underline := lipgloss.NewStyle().Foreground(th.Secondary).Render(strings.Repeat("─", len(section.title)))

	// the hidden border leaves an empty first row
	return lipgloss.JoinVertical(lipgloss.Left, header, underline, strings.TrimPrefix(tbl.String(), "\n"))
}

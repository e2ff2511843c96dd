package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"rmselect/internal/rickmorty"
	"rmselect/internal/ui/theme"
)

// metaMinWidth is the row width below which status and species are dropped.
const metaMinWidth = 36

// CharacterRow renders a character as two lines: checkbox and name with the
// search term emphasized, then the episode count.
type CharacterRow struct{}

var _ OptionRenderer[rickmorty.Character] = CharacterRow{}

func (CharacterRow) OptionHeight() int { return 2 }

func (CharacterRow) RenderOption(p OptionProps[rickmorty.Character]) string {
	t := theme.Current()
	c := p.Option
	style := rowStyle(p.Focused)

	meta := ""
	if p.Width >= metaMinWidth {
		meta = characterMeta(c)
	}
	metaWidth := ansi.StringWidth(meta)

	marker := " "
	if p.Focused {
		marker = lipgloss.NewStyle().Foreground(t.Secondary).Render("›")
	}
	name := highlightText(c.Name, p.SearchTerm, p.Width-4-metaWidth)
	first := fitWidth(marker+checkbox(p.Selected)+" "+name, p.Width-metaWidth) + meta

	episodes := lipgloss.NewStyle().Foreground(t.TextMuted).Render(episodeLabel(c.EpisodeCount()))
	second := fitWidth("   "+episodes, p.Width)

	return style.Render(first) + "\n" + style.Render(second)
}

func (CharacterRow) OptionKey(_ OptionProps[rickmorty.Character], msg tea.KeyMsg) RowAction {
	return defaultRowAction(msg)
}

func episodeLabel(n int) string {
	return strconv.Itoa(n) + " Episodes"
}

// characterMeta renders "● Alive · Human" with the dot colored by status.
func characterMeta(c rickmorty.Character) string {
	t := theme.Current()
	color := t.TextMuted
	switch strings.ToLower(c.Status) {
	case "alive":
		color = t.Success
	case "dead":
		color = t.Error
	}
	parts := make([]string, 0, 2)
	if c.Status != "" {
		parts = append(parts, c.Status)
	}
	if c.Species != "" {
		parts = append(parts, c.Species)
	}
	if len(parts) == 0 {
		return ""
	}
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Render(strings.Join(parts, " · "))
	return dot + " " + text + " "
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rmselect/internal/ui/theme"
)

func (a *App) View() string {
	input := lipgloss.NewStyle().PaddingLeft(selectOriginX).Render(a.sel.InputView())
	base := lipgloss.JoinVertical(lipgloss.Left,
		a.headerView(),
		"",
		input,
		"",
		a.bodyView(),
	)
	panel := a.sel.PanelView()

	if a.width <= 0 || a.height <= 0 {
		// before the first WindowSizeMsg: stack everything
		parts := []string{a.headerView(), "", input}
		if panel != "" {
			parts = append(parts, lipgloss.NewStyle().PaddingLeft(selectOriginX).Render(panel))
		}
		parts = append(parts, "", a.bodyView(), "", a.statusView())
		return strings.Join(parts, "\n")
	}

	c := NewCanvas(a.width, a.height)
	c.DrawAt(0, 0, base)
	c.DrawAt(0, a.height-1, a.statusView())
	if panel != "" {
		c.DrawAt(selectOriginX, selectOriginY+lipgloss.Height(input), panel)
	}
	if a.showHelp {
		c.DrawCentered(renderHelpOverlay(a.keys))
	}
	return c.Render()
}

func (a *App) headerView() string {
	title := styleHeader().Render("rmselect")
	sub := " Rick and Morty characters"
	if a.cfg.Version != "" {
		sub += " · " + a.cfg.Version
	}
	return title + styleMuted().Render(sub)
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return appMaxSelectWidth
	}
	return max(min(a.width-2*selectOriginX, appMaxSelectWidth), minSelectWidth)
}

func (a *App) bodyView() string {
	pad := lipgloss.NewStyle().PaddingLeft(selectOriginX)
	return pad.Render(a.selectionSummary()) + "\n\n" + pad.Render(a.description())
}

func (a *App) selectionSummary() string {
	count := fmt.Sprintf("%d", len(a.selected))
	if limit := a.cfg.MaxSelectable; limit > 0 {
		count = fmt.Sprintf("%d/%d", len(a.selected), limit)
	}
	label := styleMuted().Render("Selected (" + count + "): ")
	if len(a.selected) == 0 {
		return label + styleMuted().Italic(true).Render("nothing yet")
	}
	names := make([]string, 0, len(a.selected))
	for _, c := range a.selected {
		names = append(names, styleSelectedName().Render(c.Name))
	}
	return label + strings.Join(names, styleMuted().Render(", "))
}

func (a *App) description() string {
	w := a.contentWidth()
	k := fmt.Sprintf("%s|%d|%s", a.cfg.OutputFormat, w, theme.CurrentName())
	if k == a.descKey {
		return a.desc
	}
	capNote := "Any number of characters can be picked."
	if a.cfg.MaxSelectable > 0 {
		capNote = fmt.Sprintf("At most **%d** characters stay selected; picking another drops the oldest pick.", a.cfg.MaxSelectable)
	}
	a.desc = buildMarkdownRenderer(a.cfg.OutputFormat, w)(fmt.Sprintf(descriptionTemplate, capNote))
	a.descKey = k
	return a.desc
}

func (a *App) statusView() string {
	if a.status == "" {
		return styleMuted().Render(" F1 help · Ctrl+T theme · Ctrl+Y copy · Ctrl+C quit")
	}
	return " " + styleStatus(a.statusErr).Render(a.status)
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"rmselect/internal/rickmorty"
	"rmselect/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ExitSummary is printed after the program leaves the alt screen.
type ExitSummary struct {
	Version       string
	StartTime     time.Time
	MaxSelectable int
	Selection     []rickmorty.Character
}

func printExitSummary(w io.Writer, summary ExitSummary) {
	t := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.Text)

	versionStr := ""
	if summary.Version != "" {
		versionStr = dimStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	sessionStr := dimStyle.Render(fmt.Sprintf(" • %s session", formatDuration(time.Since(summary.StartTime))))

	count := fmt.Sprintf("%d", len(summary.Selection))
	if summary.MaxSelectable > 0 {
		count = fmt.Sprintf("%d/%d", len(summary.Selection), summary.MaxSelectable)
	}
	line := fmt.Sprintf("Selected %s", count)
	if len(summary.Selection) > 0 {
		names := make([]string, 0, len(summary.Selection))
		for _, c := range summary.Selection {
			names = append(names, nameStyle.Render(c.Name))
		}
		line += ": " + strings.Join(names, ", ")
	}

	_, _ = fmt.Fprintln(w, appStyle.Render("rmselect")+versionStr+sessionStr)
	_, _ = fmt.Fprintln(w, line)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

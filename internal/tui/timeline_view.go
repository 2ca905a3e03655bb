package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tablero-cli/internal/timeline"
)

// viewTimeline renders the shared-window Gantt chart, rescaling the layout's
// abstract units to the terminal width.
func (m appModel) viewTimeline() string {
	chart := timeline.Layout(m.db.ActiveTasks(), m.today)

	labelWidth := 24
	barArea := m.width - labelWidth - 2
	if barArea < 10 {
		barArea = 10
	}
	cellsPerDay := float64(barArea) / float64(chart.TotalDays+1)

	header := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).
		Render(fmt.Sprintf("Timeline  %s → %s (%d days)", chart.WindowStart, chart.WindowEnd, chart.TotalDays))

	lines := []string{header, ""}
	for _, bar := range chart.Bars {
		label := truncate(bar.Title, labelWidth-1)
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))

		offset := int(float64(bar.OffsetDays) * cellsPerDay)
		width := int(float64(bar.DurationDays) * cellsPerDay)
		if width < 1 {
			width = 1
		}
		if offset+width > barArea {
			width = barArea - offset
		}
		if width < 1 {
			width = 1
		}

		filled := int(float64(width) * bar.Progress / 100)
		segment := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		styled := lipgloss.NewStyle().Foreground(badgeColor(bar.Color)).Render(segment)

		lines = append(lines, label+pad+strings.Repeat(" ", offset)+styled)
	}
	if len(chart.Bars) == 0 {
		lines = append(lines, styleMuted().Render("no active tasks"))
	}

	// Subtask markers sit under their parent's offset.
	if len(chart.SubTaskBars) > 0 {
		lines = append(lines, "", styleMuted().Render("Subtasks"))
		for _, marker := range chart.SubTaskBars {
			check := "░"
			if marker.Completed {
				check = "█"
			}
			offset := int(float64(marker.OffsetDays) * cellsPerDay)
			label := truncate(marker.Description, labelWidth-1)
			pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
			lines = append(lines, styleMuted().Render(label+pad+strings.Repeat(" ", offset)+check))
		}
	}

	return strings.Join(lines, "\n")
}

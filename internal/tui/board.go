package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tablero-cli/internal/model"
	"tablero-cli/internal/progress"
)

var columnTitles = map[model.Status]string{
	model.StatusPending:    "Pending",
	model.StatusInProgress: "In progress",
	model.StatusDone:       "Done",
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func (m appModel) viewBoard() string {
	cols := model.Statuses()
	colWidth := m.width/len(cols) - 2
	if colWidth < 16 {
		colWidth = 16
	}
	bodyHeight := m.height - 4
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	rendered := make([]string, 0, len(cols))
	for ci, status := range cols {
		rendered = append(rendered, m.renderColumn(ci, status, colWidth, bodyHeight))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m appModel) renderColumn(ci int, status model.Status, width, height int) string {
	tasks := m.columnTasks(status)

	title := fmt.Sprintf("%s (%d)", columnTitles[status], len(tasks))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	if ci == m.col && m.view == viewBoard {
		titleStyle = titleStyle.Foreground(colorAccent)
	}

	lines := []string{titleStyle.Render(truncate(title, width))}
	for ti, t := range tasks {
		lines = append(lines, m.renderCard(t, width, ci == m.col && ti == m.row))
	}
	if len(tasks) == 0 {
		lines = append(lines, styleMuted().Render("  —"))
	}

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorColumnLine).
		BorderRight(ci != len(model.Statuses())-1).
		Render(body)
}

func (m appModel) renderCard(t model.Task, width int, selected bool) string {
	badge := progress.Classify(&t, m.today)
	pct := progress.Progress(&t, m.today)

	marker := lipgloss.NewStyle().Foreground(badgeColor(badge.Color)).Render("●")
	title := truncate(t.Title, width-4)

	meta := fmt.Sprintf("%3.0f%%", pct)
	if t.DueDate != nil {
		meta += " · " + progress.DueLabel(t.DueDate, m.today)
	}
	if t.Assignee != "" {
		meta += " · " + t.Assignee
	}
	metaLine := styleMuted().Render("  " + truncate(meta, width-2))

	line := fmt.Sprintf("%s %s", marker, title)
	if selected {
		line = styleSelected().Render(fmt.Sprintf("%s %s", "●", title))
	}
	return line + "\n" + metaLine
}

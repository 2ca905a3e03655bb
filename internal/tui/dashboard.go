package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tablero-cli/internal/stats"
)

func (m appModel) viewDashboard() string {
	summary := stats.Aggregate(m.db.ActiveTasks(), m.db.Projects, m.today)
	p := summary.Portfolio

	header := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("Dashboard")

	lines := []string{
		header,
		"",
		fmt.Sprintf("Tasks        %d total · %d done · %d in progress · %d pending",
			p.Total, p.Completed, p.InProgress, p.Pending),
		fmt.Sprintf("Completion   %.1f%%", p.CompletionPct),
		m.renderOverdueLine(p.Overdue, p.UpcomingDeadlines),
		fmt.Sprintf("Budget       %.2f planned · %.2f spent · %.2f variance (%s)",
			p.Budget, p.ActualCost, p.Variance, stats.HealthFor(p.VariancePct)),
		"",
	}

	if len(p.TopAssignees) > 0 {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Top assignees"))
		for _, a := range p.TopAssignees {
			bar := strings.Repeat("▪", a.Count)
			lines = append(lines, fmt.Sprintf("  %-20s %s %d", truncate(a.Assignee, 20), bar, a.Count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Completed by month (%d)", p.Year)))
	var row strings.Builder
	for _, b := range p.CompletedByMonth {
		row.WriteString(fmt.Sprintf("%s:%d  ", b.Month, b.Count))
	}
	lines = append(lines, "  "+strings.TrimSpace(row.String()), "")

	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Projects"))
	for _, ps := range summary.PerProject {
		name := ps.ProjectName
		if name == "" {
			name = ps.ProjectID
		}
		deadline := "—"
		if ps.NextDeadline != nil {
			deadline = ps.NextDeadline.String()
		}
		lines = append(lines, fmt.Sprintf("  %-24s %3d tasks · %5.1f%% done · next due %s",
			truncate(name, 24), ps.Total, ps.CompletionPct, deadline))
	}
	if len(summary.PerProject) == 0 {
		lines = append(lines, styleMuted().Render("  no projects"))
	}

	return strings.Join(lines, "\n")
}

func (m appModel) renderOverdueLine(overdue, upcoming int) string {
	line := fmt.Sprintf("Deadlines    %d overdue · %d due within a week", overdue, upcoming)
	if overdue > 0 {
		return styleError().Render(line)
	}
	return line
}

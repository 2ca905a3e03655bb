package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tablero-cli/internal/progress"
)

var (
	mdRendererMu sync.Mutex
	// Cache renderers by wrap width. WithAutoStyle can block on terminal
	// queries, so a fixed style is used and the style key stays constant.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	mdRendererMu.Lock()
	r := mdRenderers[width]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[width]; existing != nil {
			r = existing
		} else {
			mdRenderers[width] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m appModel) viewDetail() string {
	t, ok := m.db.FindTask(m.detailTaskID)
	if !ok {
		return styleMuted().Render("task gone")
	}

	badge := progress.Classify(t, m.today)
	pct := progress.Progress(t, m.today)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(t.Title)
	badgeText := lipgloss.NewStyle().Foreground(badgeColor(badge.Color)).
		Render(fmt.Sprintf("%s · %.0f%%", badge.State, pct))

	priorityText := lipgloss.NewStyle().
		Foreground(badgeColor(progress.PriorityColor(t.Priority))).
		Render(string(t.Priority) + " priority")

	lines := []string{
		title,
		badgeText,
		styleMuted().Render(string(t.Status)) + " · " + priorityText +
			styleMuted().Render(" · due "+progress.DueLabel(t.DueDate, m.today)),
		"",
	}

	if t.Assignee != "" {
		lines = append(lines, "Assignee: "+t.Assignee)
	}
	if t.Budget != nil || t.ActualCost != nil {
		budget, cost := 0.0, 0.0
		if t.Budget != nil {
			budget = *t.Budget
		}
		if t.ActualCost != nil {
			cost = *t.ActualCost
		}
		lines = append(lines, fmt.Sprintf("Budget: %.2f planned · %.2f spent", budget, cost))
	}

	if t.Description != "" {
		lines = append(lines, "", renderMarkdown(t.Description, m.width-4))
	}

	if len(t.SubTasks) > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("Subtasks (%d/%d)", t.CompletedSubTasks(), len(t.SubTasks))))
		for i, st := range t.SubTasks {
			check := "[ ]"
			if st.Completed {
				check = "[x]"
			}
			row := fmt.Sprintf("%s %s", check, st.Description)
			if i == m.detailSub {
				row = styleSelected().Render(row)
			}
			lines = append(lines, "  "+row)
		}
	}

	if len(t.Files) > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render("Files"))
		for _, f := range t.Files {
			lines = append(lines, styleMuted().Render("  "+f.Name))
		}
	}

	return strings.Join(lines, "\n")
}

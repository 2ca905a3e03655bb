package cli

import (
	"strconv"

	"tablero-cli/internal/model"
	"tablero-cli/internal/stats"

	"github.com/spf13/cobra"
)

// projectTable renders the per-project stats as CSV for `--format csv`.
type projectTable []stats.ProjectStats

func (projectTable) CSVHeader() []string {
	return []string{
		"projectId", "projectName", "total", "completed", "inProgress",
		"overdue", "completionPct", "budget", "actualCost", "variance",
		"health", "nextDeadline",
	}
}

func (t projectTable) CSVRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, ps := range t {
		deadline := ""
		if ps.NextDeadline != nil {
			deadline = ps.NextDeadline.String()
		}
		rows = append(rows, []string{
			ps.ProjectID, ps.ProjectName,
			strconv.Itoa(ps.Total), strconv.Itoa(ps.Completed),
			strconv.Itoa(ps.InProgress), strconv.Itoa(ps.Overdue),
			strconv.FormatFloat(ps.CompletionPct, 'f', 1, 64),
			strconv.FormatFloat(ps.Budget, 'f', 2, 64),
			strconv.FormatFloat(ps.ActualCost, 'f', 2, 64),
			strconv.FormatFloat(ps.Variance, 'f', 2, 64),
			string(stats.HealthFor(ps.VariancePct)),
			deadline,
		})
	}
	return rows
}

func newStatsCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-project and portfolio statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			today, err := appToday(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks := db.ActiveTasks()
			projects := db.Projects
			if project != "" {
				p, err := resolveProject(db, project)
				if err != nil {
					return writeErr(cmd, err)
				}
				projects = []model.Project{*p}
				filtered := tasks[:0]
				for _, t := range tasks {
					if t.ProjectID == p.ID {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}
			summary := stats.Aggregate(tasks, projects, today)
			if app.Format == "csv" {
				return writeOut(cmd, app, projectTable(summary.PerProject))
			}
			return writeOut(cmd, app, map[string]any{"data": summary})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Limit to one project (id or name)")
	return cmd
}

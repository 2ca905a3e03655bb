package cli

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/store"
	"tablero-cli/internal/timeline"

	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Gantt-style layout of active tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			today, err := appToday(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := timelineTasks(db, project)
			if err != nil {
				return writeErr(cmd, err)
			}
			chart := timeline.Layout(tasks, today)
			return writeOut(cmd, app, map[string]any{"data": chart})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Limit to one project (id or name)")
	return cmd
}

func timelineTasks(db *store.DB, project string) ([]model.Task, error) {
	tasks := db.ActiveTasks()
	if project == "" {
		return tasks, nil
	}
	p, err := resolveProject(db, project)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == p.ID {
			out = append(out, t)
		}
	}
	return out, nil
}

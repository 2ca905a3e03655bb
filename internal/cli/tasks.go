package cli

import (
	"strconv"
	"strings"
	"time"

	"tablero-cli/internal/model"
	"tablero-cli/internal/mutate"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/progress"
	"tablero-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksAssignCmd(app))
	cmd.AddCommand(newTasksSetPriorityCmd(app))
	cmd.AddCommand(newTasksSetDatesCmd(app))
	cmd.AddCommand(newTasksAddSubTaskCmd(app))
	cmd.AddCommand(newTasksToggleSubTaskCmd(app))
	cmd.AddCommand(newTasksAttachCmd(app))
	cmd.AddCommand(newTasksSetBudgetCmd(app))
	cmd.AddCommand(newTasksSetCostCmd(app))
	cmd.AddCommand(newTasksDeactivateCmd(app))
	cmd.AddCommand(newTasksRestoreCmd(app))
	return cmd
}

// resolveProject accepts a project id or a display name.
func resolveProject(db *store.DB, ref string) (*model.Project, error) {
	ref = strings.TrimSpace(ref)
	if p, ok := db.FindProject(ref); ok {
		return p, nil
	}
	if p, ok := db.FindProjectByName(ref); ok {
		return p, nil
	}
	return nil, errNotFound("project", ref)
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var project string
	var title string
	var description string
	var assignee string
	var priority string
	var start string
	var due string
	var budget float64
	var subtasks []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindProfile(actorID); !ok {
				return writeErr(cmd, errNotFound("profile", actorID))
			}
			p, err := resolveProject(db, project)
			if err != nil {
				return writeErr(cmd, err)
			}

			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return writeErr(cmd, err)
			}
			dueDate, err := parseDateFlag("due", due)
			if err != nil {
				return writeErr(cmd, err)
			}

			pr := model.Priority(strings.ToLower(strings.TrimSpace(priority)))
			if priority != "" && !model.IsValidPriority(pr) {
				return writeErr(cmd, errInvalidPriorityFlag(priority))
			}
			if priority == "" {
				pr = model.PriorityMedium
			}

			var budgetPtr *float64
			if cmd.Flags().Changed("budget") {
				if budget < 0 {
					return writeErr(cmd, mutate.ErrNegativeAmount)
				}
				actor, _ := db.FindProfile(actorID)
				if !perm.CanEditBudget(actor, policy()) {
					return writeErr(cmd, mutate.UnauthorizedError{ActorID: actorID})
				}
				budgetPtr = &budget
			}

			now := time.Now().UTC()
			t := model.Task{
				ID:          s.NextID(db, "task"),
				ProjectID:   p.ID,
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(description),
				Assignee:    strings.TrimSpace(assignee),
				Status:      model.StatusPending,
				Priority:    pr,
				StartDate:   startDate,
				DueDate:     dueDate,
				Budget:      budgetPtr,
				Active:      true,
				CreatedBy:   actorID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			for _, desc := range subtasks {
				desc = strings.TrimSpace(desc)
				if desc == "" {
					continue
				}
				t.SubTasks = append(t.SubTasks, model.SubTask{
					ID:          s.NextID(db, "sub"),
					Description: desc,
				})
			}
			db.Tasks = append(db.Tasks, t)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(actorID, "task.create", t.ID, map[string]any{"title": t.Title, "projectId": t.ProjectID})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id or name")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee display name")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high; default medium)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Planned spend (privileged roles only)")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Subtask description (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// taskView is a task plus its derived read-side fields.
type taskView struct {
	model.Task
	Progress float64 `json:"progress"`
	Badge    string  `json:"badge"`
	Color    string  `json:"color"`
	DueLabel string  `json:"dueLabel"`
}

func viewOf(t model.Task, today model.Date) taskView {
	b := progress.Classify(&t, today)
	return taskView{
		Task:     t,
		Progress: progress.Progress(&t, today),
		Badge:    string(b.State),
		Color:    string(b.Color),
		DueLabel: progress.DueLabel(t.DueDate, today),
	}
}

// taskList renders as CSV for `--format csv`.
type taskList []taskView

func (taskList) CSVHeader() []string {
	return []string{"id", "project", "title", "assignee", "status", "priority", "due", "progress", "badge"}
}

func (l taskList) CSVRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, v := range l {
		due := ""
		if v.DueDate != nil {
			due = v.DueDate.String()
		}
		rows = append(rows, []string{
			v.ID, v.ProjectID, v.Title, v.Assignee,
			string(v.Status), string(v.Priority), due,
			strconv.FormatFloat(v.Progress, 'f', -1, 64),
			v.Badge,
		})
	}
	return rows
}

func newTasksListCmd(app *App) *cobra.Command {
	var project string
	var status string
	var assignee string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with derived progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			today, err := appToday(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var projectID string
			if project != "" {
				p, err := resolveProject(db, project)
				if err != nil {
					return writeErr(cmd, err)
				}
				projectID = p.ID
			}

			out := taskList{}
			for _, t := range db.Tasks {
				if !all && !t.Active {
					continue
				}
				if projectID != "" && t.ProjectID != projectID {
					continue
				}
				if status != "" && t.Status != model.Status(status) {
					continue
				}
				if assignee != "" && !strings.EqualFold(strings.TrimSpace(t.Assignee), strings.TrimSpace(assignee)) {
					continue
				}
				out = append(out, viewOf(t, today))
			}
			if app.Format == "csv" {
				return writeOut(cmd, app, out)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by project id or name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending|in_progress|done)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee display name")
	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated tasks")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with derived progress and badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			today, err := appToday(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": viewOf(*t, today)})
		},
	}
	return cmd
}

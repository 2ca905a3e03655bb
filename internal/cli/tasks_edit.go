package cli

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/mutate"
	"tablero-cli/internal/store"

	"github.com/spf13/cobra"
)

// mutationResult is the common output envelope for edit commands.
func mutationOut(cmd *cobra.Command, app *App, t *model.Task, changed bool) error {
	return writeOut(cmd, app, map[string]any{
		"data": map[string]any{
			"task":    t,
			"changed": changed,
		},
	})
}

// saveAndLog persists the db and appends the event when the op changed state.
func saveAndLog(s store.Store, db *store.DB, changed bool, actorID, typ, entityID string, payload map[string]any) error {
	if !changed {
		return nil
	}
	if err := s.Save(db); err != nil {
		return err
	}
	return s.AppendEvent(actorID, typ, entityID, payload)
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-status <task-id> <pending|in_progress|done>",
		Short: "Move a task between board columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskStatus(db, policy(), actorID, args[0], model.Status(args[1]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.set_status", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	return cmd
}

func newTasksAssignCmd(app *App) *cobra.Command {
	var avatar string

	cmd := &cobra.Command{
		Use:   "assign <task-id> <assignee>",
		Short: "Assign a task by display name (empty name unassigns)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetAssignee(db, policy(), actorID, args[0], args[1], avatar)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.assign", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	cmd.Flags().StringVar(&avatar, "avatar", "", "Assignee avatar URL or initials")
	return cmd
}

func newTasksSetPriorityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-priority <task-id> <low|medium|high>",
		Short: "Change a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetPriority(db, policy(), actorID, args[0], model.Priority(args[1]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.set_priority", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	return cmd
}

func newTasksSetDatesCmd(app *App) *cobra.Command {
	var start string
	var due string

	cmd := &cobra.Command{
		Use:   "set-dates <task-id>",
		Short: "Set or clear a task's start and due dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
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
			res, err := mutate.SetDates(db, policy(), actorID, args[0], startDate, dueDate)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.set_dates", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD; empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD; empty clears)")
	return cmd
}

func newTasksAddSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-subtask <task-id> <description>",
		Short: "Append an unchecked subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddSubTask(db, s, policy(), actorID, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.add_subtask", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	return cmd
}

func newTasksToggleSubTaskCmd(app *App) *cobra.Command {
	var markDone bool
	var markUndone bool

	cmd := &cobra.Command{
		Use:   "toggle-subtask <task-id> <subtask-id>",
		Short: "Flip a subtask's completed flag (or force with --done/--undone)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			var res mutate.SubTaskResult
			if markDone || markUndone {
				// Idempotent set rather than a flip.
				res, err = mutate.SetSubTaskCompleted(db, policy(), actorID, args[0], args[1], markDone)
			} else {
				res, err = mutate.ToggleSubTask(db, policy(), actorID, args[0], args[1])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.toggle_subtask", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	cmd.Flags().BoolVar(&markDone, "done", false, "Mark completed (no-op when already done)")
	cmd.Flags().BoolVar(&markUndone, "undone", false, "Mark not completed (no-op when already unchecked)")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	return cmd
}

func newTasksAttachCmd(app *App) *cobra.Command {
	var subTaskID string
	var location string

	cmd := &cobra.Command{
		Use:   "attach-file <task-id> <file-name>",
		Short: "Record a file reference on a task or subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AttachFile(db, policy(), actorID, args[0], subTaskID, args[1], location)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveAndLog(s, db, res.Changed, actorID, "task.attach_file", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return mutationOut(cmd, app, res.Task, res.Changed)
		},
	}
	cmd.Flags().StringVar(&subTaskID, "subtask", "", "Attach to this subtask instead of the task")
	cmd.Flags().StringVar(&location, "location", "", "Where the file lives (path or URL)")
	return cmd
}

func newTasksSetBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-budget <task-id> <amount>",
		Short: "Set planned spend (privileged roles only)",
		Args:  cobra.ExactArgs(2),
		RunE:  moneyRunE(app, "task.set_budget", mutate.SetBudget),
	}
	return cmd
}

func newTasksSetCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cost <task-id> <amount>",
		Short: "Record actual spend (privileged roles only)",
		Args:  cobra.ExactArgs(2),
		RunE:  moneyRunE(app, "task.set_cost", mutate.SetActualCost),
	}
	return cmd
}

func newTasksDeactivateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate <task-id>",
		Short: "Soft-delete a task (kept in storage, hidden from views)",
		Args:  cobra.ExactArgs(1),
		RunE:  activeRunE(app, "task.deactivate", false),
	}
	return cmd
}

func newTasksRestoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <task-id>",
		Short: "Restore a deactivated task",
		Args:  cobra.ExactArgs(1),
		RunE:  activeRunE(app, "task.restore", true),
	}
	return cmd
}

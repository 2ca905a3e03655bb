package mutate

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type SetStatusResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskStatus moves a task between board columns. Any valid status may
// follow any other (done tasks can be reopened); completing a task does not
// touch its subtasks, so a done task may carry incomplete subtasks.
func SetTaskStatus(db *store.DB, policy perm.Policy, actorID, taskID string, status model.Status) (SetStatusResult, error) {
	if db == nil {
		return SetStatusResult{}, nil
	}
	if !model.IsValidStatus(status) {
		return SetStatusResult{}, ErrInvalidStatus
	}

	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return SetStatusResult{}, err
	}
	if !t.Active {
		return SetStatusResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return SetStatusResult{}, err
	}

	prev := t.Status
	if prev == status {
		return SetStatusResult{Task: t, Changed: false}, nil
	}

	t.Status = status
	touch(t)
	return SetStatusResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(status),
		},
	}, nil
}

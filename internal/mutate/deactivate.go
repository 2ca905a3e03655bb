package mutate

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type ActiveResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskActive soft-deletes (active=false) or restores a task. Deactivated
// tasks keep their row but drop out of boards, stats and timelines.
func SetTaskActive(db *store.DB, policy perm.Policy, actorID, taskID string, active bool) (ActiveResult, error) {
	if db == nil {
		return ActiveResult{}, nil
	}
	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return ActiveResult{}, err
	}
	if err := canEdit(t, actor, policy); err != nil {
		return ActiveResult{}, err
	}
	if t.Active == active {
		return ActiveResult{Task: t, Changed: false}, nil
	}
	t.Active = active
	touch(t)
	return ActiveResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"active": t.Active,
		},
	}, nil
}

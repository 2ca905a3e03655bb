package mutate

import (
	"strings"

	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type AssignResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetAssignee hands a task to a person by display name. An empty name
// unassigns. Note the authorization wrinkle: after reassignment the previous
// assignee loses edit rights unless they hold a privileged role.
func SetAssignee(db *store.DB, policy perm.Policy, actorID, taskID, assignee, avatar string) (AssignResult, error) {
	if db == nil {
		return AssignResult{}, nil
	}
	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return AssignResult{}, err
	}
	if !t.Active {
		return AssignResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return AssignResult{}, err
	}

	assignee = strings.TrimSpace(assignee)
	avatar = strings.TrimSpace(avatar)
	if t.Assignee == assignee && t.AssigneeAvatar == avatar {
		return AssignResult{Task: t, Changed: false}, nil
	}

	prev := t.Assignee
	t.Assignee = assignee
	t.AssigneeAvatar = avatar
	touch(t)
	return AssignResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"from": prev,
			"to":   assignee,
		},
	}, nil
}

// SetPriority changes the task's priority flag.
func SetPriority(db *store.DB, policy perm.Policy, actorID, taskID string, p model.Priority) (AssignResult, error) {
	if db == nil {
		return AssignResult{}, nil
	}
	if !model.IsValidPriority(p) {
		return AssignResult{}, ErrInvalidPriority
	}
	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return AssignResult{}, err
	}
	if !t.Active {
		return AssignResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return AssignResult{}, err
	}
	if t.Priority == p {
		return AssignResult{Task: t, Changed: false}, nil
	}
	prev := t.Priority
	t.Priority = p
	touch(t)
	return AssignResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(p),
		},
	}, nil
}

// SetDates moves the schedule. Either side may be nil to clear it; a due
// date before the start date is rejected.
func SetDates(db *store.DB, policy perm.Policy, actorID, taskID string, start, due *model.Date) (AssignResult, error) {
	if db == nil {
		return AssignResult{}, nil
	}
	if start != nil && due != nil && due.Before(*start) {
		return AssignResult{}, ErrDueBeforeStart
	}
	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return AssignResult{}, err
	}
	if !t.Active {
		return AssignResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return AssignResult{}, err
	}
	if datesEqual(t.StartDate, start) && datesEqual(t.DueDate, due) {
		return AssignResult{Task: t, Changed: false}, nil
	}
	t.StartDate = start
	t.DueDate = due
	touch(t)
	return AssignResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"startDate": dateString(start),
			"dueDate":   dateString(due),
		},
	}, nil
}

func datesEqual(a, b *model.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func dateString(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

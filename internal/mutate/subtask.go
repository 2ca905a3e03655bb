package mutate

import (
	"strings"
	"time"

	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type SubTaskResult struct {
	Task         *model.Task
	SubTask      *model.SubTask
	Changed      bool
	EventPayload map[string]any
}

// ToggleSubTask flips one subtask's Completed flag. The parent task's status
// is left alone; derived progress picks up the new ratio on the next read.
func ToggleSubTask(db *store.DB, policy perm.Policy, actorID, taskID, subTaskID string) (SubTaskResult, error) {
	return changeSubTask(db, policy, actorID, taskID, subTaskID, nil)
}

// SetSubTaskCompleted writes the flag idempotently: a subtask already in the
// requested state is a no-op. Authorization still runs before the no-op
// check, so an actor without edit rights never gets a silent success.
func SetSubTaskCompleted(db *store.DB, policy perm.Policy, actorID, taskID, subTaskID string, completed bool) (SubTaskResult, error) {
	return changeSubTask(db, policy, actorID, taskID, subTaskID, &completed)
}

func changeSubTask(db *store.DB, policy perm.Policy, actorID, taskID, subTaskID string, want *bool) (SubTaskResult, error) {
	if db == nil {
		return SubTaskResult{}, nil
	}
	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return SubTaskResult{}, err
	}
	if !t.Active {
		return SubTaskResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return SubTaskResult{}, err
	}

	st, ok := t.FindSubTask(strings.TrimSpace(subTaskID))
	if !ok {
		return SubTaskResult{}, NotFoundError{Kind: "subtask", ID: strings.TrimSpace(subTaskID)}
	}

	if want != nil && st.Completed == *want {
		return SubTaskResult{Task: t, SubTask: st, Changed: false}, nil
	}

	st.Completed = !st.Completed
	touch(t)
	return SubTaskResult{
		Task:    t,
		SubTask: st,
		Changed: true,
		EventPayload: map[string]any{
			"subTaskId": st.ID,
			"completed": st.Completed,
		},
	}, nil
}

// AddSubTask appends a new unchecked subtask to the task's checklist.
func AddSubTask(db *store.DB, s store.Store, policy perm.Policy, actorID, taskID, description string) (SubTaskResult, error) {
	if db == nil {
		return SubTaskResult{}, nil
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return SubTaskResult{}, ErrEmptyDescription
	}

	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return SubTaskResult{}, err
	}
	if !t.Active {
		return SubTaskResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return SubTaskResult{}, err
	}

	t.SubTasks = append(t.SubTasks, model.SubTask{
		ID:          s.NextID(db, "sub"),
		Description: description,
	})
	st := &t.SubTasks[len(t.SubTasks)-1]
	touch(t)
	return SubTaskResult{
		Task:    t,
		SubTask: st,
		Changed: true,
		EventPayload: map[string]any{
			"subTaskId":   st.ID,
			"description": st.Description,
		},
	}, nil
}

// AttachFile records a file reference on a task, or on one of its subtasks
// when subTaskID is non-empty. The file itself is not copied; only the
// reference is tracked.
func AttachFile(db *store.DB, policy perm.Policy, actorID, taskID, subTaskID, name, location string) (SubTaskResult, error) {
	if db == nil {
		return SubTaskResult{}, nil
	}
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" {
		return SubTaskResult{}, ErrEmptyFileName
	}

	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return SubTaskResult{}, err
	}
	if !t.Active {
		return SubTaskResult{}, ErrTaskInactive
	}
	if err := canEdit(t, actor, policy); err != nil {
		return SubTaskResult{}, err
	}

	ref := model.FileRef{Name: name, Location: location, UploadedAt: time.Now().UTC()}
	payload := map[string]any{"name": name, "location": location}

	subTaskID = strings.TrimSpace(subTaskID)
	var st *model.SubTask
	if subTaskID != "" {
		var ok bool
		st, ok = t.FindSubTask(subTaskID)
		if !ok {
			return SubTaskResult{}, NotFoundError{Kind: "subtask", ID: subTaskID}
		}
		st.Files = append(st.Files, ref)
		payload["subTaskId"] = st.ID
	} else {
		t.Files = append(t.Files, ref)
	}

	touch(t)
	return SubTaskResult{
		Task:         t,
		SubTask:      st,
		Changed:      true,
		EventPayload: payload,
	}, nil
}

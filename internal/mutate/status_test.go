package mutate

import (
	"errors"
	"testing"

	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

func testDB() *store.DB {
	return &store.DB{
		Profiles: []model.Profile{
			{ID: "prof-ana", DisplayName: "Ana Ruiz", Role: model.RoleMember},
			{ID: "prof-dir", DisplayName: "Dana Ortiz", Role: model.RoleDirector},
			{ID: "prof-out", DisplayName: "Leo Park", Role: model.RoleMember},
		},
		Projects: []model.Project{{ID: "proj-1", Name: "Rollout"}},
		Tasks: []model.Task{
			{
				ID:        "task-1",
				ProjectID: "proj-1",
				Title:     "Site survey",
				Assignee:  "Ana Ruiz",
				Status:    model.StatusPending,
				Priority:  model.PriorityMedium,
				SubTasks: []model.SubTask{
					{ID: "sub-1", Description: "Collect photos"},
				},
				Active: true,
			},
		},
	}
}

func TestSetTaskStatus(t *testing.T) {
	db := testDB()
	pol := perm.DefaultPolicy()

	res, err := SetTaskStatus(db, pol, "prof-ana", "task-1", model.StatusInProgress)
	if err != nil {
		t.Fatalf("SetTaskStatus error: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	if res.Task.Status != model.StatusInProgress {
		t.Fatalf("status = %q", res.Task.Status)
	}
	if res.EventPayload["from"] != "pending" || res.EventPayload["to"] != "in_progress" {
		t.Fatalf("payload = %+v", res.EventPayload)
	}

	// Reopening done tasks is allowed.
	if _, err := SetTaskStatus(db, pol, "prof-ana", "task-1", model.StatusDone); err != nil {
		t.Fatalf("to done: %v", err)
	}
	res, err = SetTaskStatus(db, pol, "prof-ana", "task-1", model.StatusPending)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !res.Changed || res.Task.Status != model.StatusPending {
		t.Fatalf("reopen result = %+v", res)
	}
}

func TestSetTaskStatus_NoOp(t *testing.T) {
	db := testDB()
	res, err := SetTaskStatus(db, perm.DefaultPolicy(), "prof-ana", "task-1", model.StatusPending)
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if res.Changed {
		t.Fatalf("expected changed=false for same status")
	}
}

func TestSetTaskStatus_InvalidStatus(t *testing.T) {
	db := testDB()
	if _, err := SetTaskStatus(db, perm.DefaultPolicy(), "prof-ana", "task-1", model.Status("archived")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus; got %v", err)
	}
}

func TestSetTaskStatus_Unauthorized(t *testing.T) {
	db := testDB()
	_, err := SetTaskStatus(db, perm.DefaultPolicy(), "prof-out", "task-1", model.StatusDone)
	var ue UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError; got %v", err)
	}
	if ue.ActorID != "prof-out" || ue.TaskID != "task-1" {
		t.Fatalf("error fields = %+v", ue)
	}

	// A privileged role edits regardless of assignee.
	res, err := SetTaskStatus(db, perm.DefaultPolicy(), "prof-dir", "task-1", model.StatusDone)
	if err != nil {
		t.Fatalf("director edit: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected changed=true for director")
	}
}

func TestSetTaskStatus_NotFound(t *testing.T) {
	db := testDB()
	pol := perm.DefaultPolicy()

	_, err := SetTaskStatus(db, pol, "prof-ana", "task-missing", model.StatusDone)
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "task" {
		t.Fatalf("expected task NotFoundError; got %v", err)
	}

	_, err = SetTaskStatus(db, pol, "prof-missing", "task-1", model.StatusDone)
	if !errors.As(err, &nf) || nf.Kind != "profile" {
		t.Fatalf("expected profile NotFoundError; got %v", err)
	}
}

func TestSetTaskStatus_InactiveTask(t *testing.T) {
	db := testDB()
	db.Tasks[0].Active = false
	if _, err := SetTaskStatus(db, perm.DefaultPolicy(), "prof-ana", "task-1", model.StatusDone); !errors.Is(err, ErrTaskInactive) {
		t.Fatalf("expected ErrTaskInactive; got %v", err)
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tablero-cli/internal/model"
	"tablero-cli/internal/store"
)

func testModel(t *testing.T) appModel {
	t.Helper()
	s := store.Store{Dir: filepath.Join(t.TempDir(), ".tablero")}
	db := &store.DB{
		Version:          1,
		CurrentProfileID: "prof-ana",
		Profiles: []model.Profile{
			{ID: "prof-ana", DisplayName: "Ana Ruiz", Role: model.RoleManager},
			{ID: "prof-leo", DisplayName: "Leo Park", Role: model.RoleMember},
		},
		Projects: []model.Project{{ID: "proj-1", Name: "Rollout"}},
		Tasks: []model.Task{
			{
				ID: "task-a", ProjectID: "proj-1", Title: "Site survey",
				Assignee: "Ana Ruiz", Status: model.StatusPending,
				SubTasks: []model.SubTask{{ID: "sub-1", Description: "Photos"}},
				Active:   true,
			},
			{
				ID: "task-b", ProjectID: "proj-1", Title: "Order parts",
				Assignee: "Leo Park", Status: model.StatusInProgress, Active: true,
			},
		},
	}
	if err := s.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m := newAppModel(Options{Store: s, DB: db, Today: model.NewDate(2026, 9, 1)})
	return m
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		}
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func TestBoardNavigationAndMove(t *testing.T) {
	m := testModel(t)

	// Column 0 (pending) holds task-a; move it right into in_progress.
	m = press(t, m, "]")
	if m.flash != "" {
		t.Fatalf("unexpected flash: %q", m.flash)
	}
	task, _ := m.db.FindTask("task-a")
	if task.Status != model.StatusInProgress {
		t.Fatalf("status = %q", task.Status)
	}

	// The change was persisted and logged.
	db, err := m.s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reloaded, _ := db.FindTask("task-a")
	if reloaded.Status != model.StatusInProgress {
		t.Fatalf("persisted status = %q", reloaded.Status)
	}
	events, err := m.s.ReadEvents()
	if err != nil || len(events) != 1 || events[0].Type != "task.set_status" {
		t.Fatalf("events = %+v (%v)", events, err)
	}
}

func TestBoardMoveUnauthorizedFlashes(t *testing.T) {
	m := testModel(t)
	m.actorID = "prof-leo"

	// Leo is a plain member and not assigned to task-a.
	m = press(t, m, "]")
	if m.flash == "" {
		t.Fatal("expected a rejection flash")
	}
	task, _ := m.db.FindTask("task-a")
	if task.Status != model.StatusPending {
		t.Fatalf("rejected edit changed status to %q", task.Status)
	}
	if events, _ := m.s.ReadEvents(); len(events) != 0 {
		t.Fatalf("rejected edit logged events: %+v", events)
	}
}

func TestDetailToggleSubTask(t *testing.T) {
	m := testModel(t)

	m = press(t, m, "enter") // open task-a
	if m.view != viewDetail {
		t.Fatalf("view = %v", m.view)
	}
	m = press(t, m, "x")
	task, _ := m.db.FindTask("task-a")
	if !task.SubTasks[0].Completed {
		t.Fatal("subtask not toggled")
	}
	m = press(t, m, "esc")
	if m.view != viewBoard {
		t.Fatalf("view after esc = %v", m.view)
	}
}

func TestViewsRender(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(appModel)

	if out := m.View(); !strings.Contains(out, "Site survey") {
		t.Fatalf("board view missing task: %q", out)
	}

	m = press(t, m, "t")
	if out := m.View(); !strings.Contains(out, "Timeline") {
		t.Fatalf("timeline view missing header")
	}

	m = press(t, m, "d")
	out := m.View()
	if !strings.Contains(out, "Dashboard") || !strings.Contains(out, "Rollout") {
		t.Fatalf("dashboard view incomplete: %q", out)
	}

	m = press(t, m, "b")
	if m.view != viewBoard {
		t.Fatalf("view = %v", m.view)
	}
}

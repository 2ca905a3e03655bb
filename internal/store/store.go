// Package store is the repository adapter: a SQLite-backed workspace holding
// profiles, projects and tasks, plus an append-only JSONL log of mutation
// events. Everything above it (engine, CLI, TUI) works on the in-memory DB
// snapshot and reloads wholesale after each mutation.
package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tablero-cli/internal/model"
)

const storeDirName = ".tablero"

// DB is one loaded workspace snapshot.
type DB struct {
	Version          int             `json:"version"`
	CurrentProfileID string          `json:"currentProfileId,omitempty"`
	Profiles         []model.Profile `json:"profiles"`
	Projects         []model.Project `json:"projects"`
	Tasks            []model.Task    `json:"tasks"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .tablero dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

func (db *DB) FindProfile(id string) (*model.Profile, bool) {
	for i := range db.Profiles {
		if db.Profiles[i].ID == id {
			return &db.Profiles[i], true
		}
	}
	return nil, false
}

func (db *DB) FindProject(id string) (*model.Project, bool) {
	for i := range db.Projects {
		if db.Projects[i].ID == id {
			return &db.Projects[i], true
		}
	}
	return nil, false
}

// FindProjectByName matches on display name, case-insensitively. Names are
// presentation and may collide; callers that can should prefer FindProject.
func (db *DB) FindProjectByName(name string) (*model.Project, bool) {
	for i := range db.Projects {
		if strings.EqualFold(db.Projects[i].Name, name) {
			return &db.Projects[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

// ActiveTasks returns the working set: tasks not soft-deactivated.
func (db *DB) ActiveTasks() []model.Task {
	out := make([]model.Task, 0, len(db.Tasks))
	for _, t := range db.Tasks {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

// TasksForProject filters the active set by project id.
func (db *DB) TasksForProject(projectID string) []model.Task {
	out := []model.Task{}
	for _, t := range db.Tasks {
		if t.Active && t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

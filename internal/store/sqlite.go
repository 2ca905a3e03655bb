package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tablero-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "tablero.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness across processes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			role TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			archived INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			assignee TEXT NOT NULL,
			start_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			active INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_active ON tasks(active);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// LoadSQLite loads the full workspace state. An empty database yields an
// empty, version-1 DB.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := &DB{Version: 1}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.CurrentProfileID = readMeta("current_profile_id")

	if xs, err := readJSONRows[model.Profile](ctx, db, `SELECT json FROM profiles ORDER BY display_name, id`); err == nil {
		out.Profiles = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Project](ctx, db, `SELECT json FROM projects ORDER BY name, id`); err == nil {
		out.Projects = xs
	} else {
		return nil, err
	}
	// rowid preserves insertion order; the task collection is ordered.
	if xs, err := readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks ORDER BY rowid`); err == nil {
		out.Tasks = xs
	} else {
		return nil, err
	}

	// Ensure nil slices are empty for stable callers.
	if out.Profiles == nil {
		out.Profiles = []model.Profile{}
	}
	if out.Projects == nil {
		out.Projects = []model.Project{}
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	return out, nil
}

// SaveSQLite writes the whole state back. Replace-all in one transaction:
// the working sets here are small and a blind overwrite matches the
// fire-and-reload mutation model.
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(st.Version)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "current_profile_id", strings.TrimSpace(st.CurrentProfileID)); err != nil {
		return err
	}

	for _, t := range []string{"profiles", "projects", "tasks"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, p := range st.Profiles {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO profiles(id, display_name, role, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID, p.DisplayName, string(p.Role), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, p := range st.Projects {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO projects(id, name, archived, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID, p.Name, boolToInt(p.Archived), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, t := range st.Tasks {
		raw, _ := json.Marshal(t)
		start := ""
		if t.StartDate != nil {
			start = t.StartDate.String()
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(
			id, project_id, title, status, assignee,
			start_date, due_date, active,
			json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ProjectID, t.Title, string(t.Status), strings.TrimSpace(t.Assignee),
			start, due, boolToInt(t.Active),
			string(raw), nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

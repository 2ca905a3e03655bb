package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// runCmd executes one CLI invocation in-process against an isolated store.
func runCmd(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, out.String(), args)
	}
	return env, nil
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	env, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command failed: tablero %v: %v", args, err)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope with data key; got: %v", env)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data; got %#v", env["data"])
	}
	return m
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "init")

	ident := mustRun(t, "--dir", dir, "identity", "create", "--name", "Ana Ruiz", "--role", "manager", "--use")
	profID, _ := dataMap(t, ident)["id"].(string)
	if profID == "" {
		t.Fatalf("identity create returned no id: %#v", ident["data"])
	}

	proj := mustRun(t, "--dir", dir, "--actor", profID, "projects", "create", "--name", "Office rollout", "--client", "Acme")
	projID, _ := dataMap(t, proj)["id"].(string)
	if projID == "" {
		t.Fatalf("projects create returned no id: %#v", proj["data"])
	}

	task := mustRun(t, "--dir", dir, "--actor", profID, "tasks", "create",
		"--project", "Office rollout", "--title", "Site survey",
		"--assignee", "Ana Ruiz", "--start", "2026-09-01", "--due", "2026-09-20",
		"--subtask", "Collect photos", "--subtask", "Measure rooms")
	taskID, _ := dataMap(t, task)["id"].(string)
	if taskID == "" {
		t.Fatalf("tasks create returned no id: %#v", task["data"])
	}

	// Derived fields on show: pending task with subtasks => ratio, here 0%.
	show := mustRun(t, "--dir", dir, "--actor", profID, "tasks", "show", taskID, "--today", "2026-09-10")
	sd := dataMap(t, show)
	if sd["progress"] != 0.0 {
		t.Fatalf("progress = %v, want 0", sd["progress"])
	}
	if sd["badge"] != "on-time" {
		t.Fatalf("badge = %v, want on-time", sd["badge"])
	}

	// Check one subtask, move to in_progress: ratio wins over interpolation.
	subs, _ := sd["subTasks"].([]any)
	if len(subs) != 2 {
		t.Fatalf("subtasks = %#v", sd["subTasks"])
	}
	subID, _ := subs[0].(map[string]any)["id"].(string)
	mustRun(t, "--dir", dir, "--actor", profID, "tasks", "toggle-subtask", taskID, subID)
	mustRun(t, "--dir", dir, "--actor", profID, "tasks", "set-status", taskID, "in_progress")

	show = mustRun(t, "--dir", dir, "--actor", profID, "tasks", "show", taskID, "--today", "2026-09-10")
	if got := dataMap(t, show)["progress"]; got != 50.0 {
		t.Fatalf("progress = %v, want 50", got)
	}

	// Stats reflect the single open task.
	st := mustRun(t, "--dir", dir, "--actor", profID, "stats", "--today", "2026-09-10")
	portfolio, _ := dataMap(t, st)["portfolio"].(map[string]any)
	if portfolio["total"] != 1.0 || portfolio["inProgress"] != 1.0 {
		t.Fatalf("portfolio = %#v", portfolio)
	}

	// Timeline window spans the task's dates: 2026-09-01..2026-09-20.
	tl := mustRun(t, "--dir", dir, "--actor", profID, "timeline", "--today", "2026-09-10")
	chart := dataMap(t, tl)
	if chart["windowStart"] != "2026-09-01" || chart["windowEnd"] != "2026-09-20" {
		t.Fatalf("window = %v..%v", chart["windowStart"], chart["windowEnd"])
	}

	// Event log recorded the mutations.
	events := mustRun(t, "--dir", dir, "events", "list", "--entity", taskID)
	if xs, ok := events["data"].([]any); !ok || len(xs) < 3 {
		t.Fatalf("expected >=3 task events; got %#v", events["data"])
	}

	// Deactivate hides from default list but keeps the row.
	mustRun(t, "--dir", dir, "--actor", profID, "tasks", "deactivate", taskID)
	list := mustRun(t, "--dir", dir, "tasks", "list")
	if xs, ok := list["data"].([]any); !ok || len(xs) != 0 {
		t.Fatalf("expected empty default list; got %#v", list["data"])
	}
	list = mustRun(t, "--dir", dir, "tasks", "list", "--all")
	if xs, ok := list["data"].([]any); !ok || len(xs) != 1 {
		t.Fatalf("expected one task with --all; got %#v", list["data"])
	}
}

func TestCLIUnauthorizedEdit(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "init")
	owner := mustRun(t, "--dir", dir, "identity", "create", "--name", "Dana Ortiz", "--role", "director", "--use")
	ownerID, _ := dataMap(t, owner)["id"].(string)
	member := mustRun(t, "--dir", dir, "identity", "create", "--name", "Leo Park", "--role", "member")
	memberID, _ := dataMap(t, member)["id"].(string)

	mustRun(t, "--dir", dir, "--actor", ownerID, "projects", "create", "--name", "P")
	task := mustRun(t, "--dir", dir, "--actor", ownerID, "tasks", "create", "--project", "P", "--title", "T", "--assignee", "Dana Ortiz")
	taskID, _ := dataMap(t, task)["id"].(string)

	// Not the assignee, not privileged: rejected.
	if _, err := runCmd(t, "--dir", dir, "--actor", memberID, "tasks", "set-status", taskID, "done"); err == nil {
		t.Fatal("expected unauthorized error for member edit")
	}

	// Money fields need a privileged role even for the assignee.
	if _, err := runCmd(t, "--dir", dir, "--actor", memberID, "tasks", "set-budget", taskID, "100"); err == nil {
		t.Fatal("expected unauthorized error for member budget edit")
	}
	mustRun(t, "--dir", dir, "--actor", ownerID, "tasks", "set-budget", taskID, "100")

	// An idempotent subtask set is still gated: a member asking for the
	// current state gets rejected, not a quiet changed:false.
	sub := mustRun(t, "--dir", dir, "--actor", ownerID, "tasks", "add-subtask", taskID, "Survey site")
	taskObj, _ := dataMap(t, sub)["task"].(map[string]any)
	subs, _ := taskObj["subTasks"].([]any)
	if len(subs) != 1 {
		t.Fatalf("expected one subtask; got %#v", taskObj["subTasks"])
	}
	subID, _ := subs[0].(map[string]any)["id"].(string)
	if _, err := runCmd(t, "--dir", dir, "--actor", memberID, "tasks", "toggle-subtask", taskID, subID, "--undone"); err == nil {
		t.Fatal("expected unauthorized error for member subtask edit")
	}

	// The task is untouched by the rejected edits.
	show := mustRun(t, "--dir", dir, "tasks", "show", taskID)
	if got := dataMap(t, show)["status"]; got != "pending" {
		t.Fatalf("status = %v, want pending", got)
	}
}

func TestCLIInvalidInput(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")
	ident := mustRun(t, "--dir", dir, "identity", "create", "--name", "Ana", "--role", "admin", "--use")
	profID, _ := dataMap(t, ident)["id"].(string)
	mustRun(t, "--dir", dir, "--actor", profID, "projects", "create", "--name", "P")

	if _, err := runCmd(t, "--dir", dir, "--actor", profID, "tasks", "create", "--project", "P", "--title", "T", "--due", "not-a-date"); err == nil {
		t.Fatal("expected error for bad date")
	}
	if _, err := runCmd(t, "--dir", dir, "--actor", profID, "tasks", "create", "--project", "missing", "--title", "T"); err == nil {
		t.Fatal("expected error for unknown project")
	}
	if _, err := runCmd(t, "--dir", dir, "identity", "create", "--name", "X", "--role", "boss"); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestCLIProjectLocalDiscovery(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABLERO_DIR", "")
	t.Setenv("TABLERO_WORKSPACE", "")

	proj := t.TempDir()
	storeDir := filepath.Join(proj, ".tablero")
	mustRun(t, "--dir", storeDir, "init")
	ident := mustRun(t, "--dir", storeDir, "identity", "create", "--name", "Ana Ruiz", "--role", "manager", "--use")
	profID, _ := dataMap(t, ident)["id"].(string)
	mustRun(t, "--dir", storeDir, "--actor", profID, "projects", "create", "--name", "P")
	mustRun(t, "--dir", storeDir, "--actor", profID, "tasks", "create", "--project", "P", "--title", "Local task")

	// From a nested directory with no --dir/--workspace, the project-local
	// store is found by walking upward from the cwd.
	nested := filepath.Join(proj, "crew", "schedules")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)

	list := mustRun(t, "tasks", "list")
	xs, ok := list["data"].([]any)
	if !ok || len(xs) != 1 {
		t.Fatalf("expected the project-local task; got %#v", list["data"])
	}
	if title := xs[0].(map[string]any)["title"]; title != "Local task" {
		t.Fatalf("title = %v", title)
	}

	// An explicit --workspace still beats discovery.
	ws := mustRun(t, "--workspace", "site-a", "tasks", "list")
	if xs, ok := ws["data"].([]any); !ok || len(xs) != 0 {
		t.Fatalf("expected empty workspace list; got %#v", ws["data"])
	}
}

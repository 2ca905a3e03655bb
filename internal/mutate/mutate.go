// Package mutate holds the write operations on tasks. Each operation
// validates input, resolves the actor and task, enforces internal/perm,
// applies the change in memory and reports whether anything changed plus
// an event payload. Callers are responsible for saving the db and
// appending the event to the log.
package mutate

import (
	"strings"
	"time"

	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

// resolve looks up the actor profile and the task, trimming ids first.
func resolve(db *store.DB, actorID, taskID string) (*model.Profile, *model.Task, error) {
	actor, ok := db.FindProfile(strings.TrimSpace(actorID))
	if !ok {
		return nil, nil, NotFoundError{Kind: "profile", ID: strings.TrimSpace(actorID)}
	}
	t, ok := db.FindTask(strings.TrimSpace(taskID))
	if !ok {
		return nil, nil, NotFoundError{Kind: "task", ID: strings.TrimSpace(taskID)}
	}
	return actor, t, nil
}

func touch(t *model.Task) {
	t.UpdatedAt = time.Now().UTC()
}

// canEdit wraps the perm check with the error the CLI/TUI surface.
func canEdit(t *model.Task, actor *model.Profile, policy perm.Policy) error {
	if !perm.CanEdit(t, actor, policy) {
		return UnauthorizedError{ActorID: actor.ID, TaskID: t.ID}
	}
	return nil
}

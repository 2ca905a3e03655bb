package mutate

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// UnauthorizedError means the actor may neither edit this task (not the
// assignee, not privileged) nor, for money fields, hold a privileged role.
type UnauthorizedError struct {
	ActorID string
	TaskID  string
}

func (e UnauthorizedError) Error() string {
	// Keep this generic; CLI/TUI can wrap with more specific phrasing.
	return "unauthorized"
}

var ErrInvalidStatus = errors.New("invalid status")
var ErrNegativeAmount = errors.New("amount must be non-negative")
var ErrTaskInactive = errors.New("task is deactivated")
var ErrEmptyDescription = errors.New("description is empty")
var ErrEmptyFileName = errors.New("file name is empty")
var ErrInvalidPriority = errors.New("invalid priority")
var ErrDueBeforeStart = errors.New("due date precedes start date")

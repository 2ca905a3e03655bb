// Package progress derives per-task completion and urgency from raw task
// records. Everything here is a pure function of the task and an explicit
// "today" so the same values can be recomputed identically by every view.
package progress

import "tablero-cli/internal/model"

const (
	// Date interpolation never reports an in-progress task as untouched or
	// finished; it is clamped into this band.
	interpolateFloor = 10
	interpolateCeil  = 90

	// Fallback when interpolation is impossible (no due date, or a due date
	// on/before the start date).
	midpoint = 50
)

// Progress returns the derived completion percentage for a task, in [0,100].
//
// Precedence:
//  1. A done task is 100%, even when its subtasks are incomplete. That
//     mismatch is deliberate: marking a task done is an explicit statement
//     that overrides the checklist.
//  2. Subtasks, when present, are the source of truth: completed/total.
//  3. An in-progress task without subtasks is interpolated between its start
//     date (or today, when unset) and its due date, clamped to [10,90].
//  4. A pending task is 0%.
func Progress(t *model.Task, today model.Date) float64 {
	if t.Status == model.StatusDone {
		return 100
	}

	if n := len(t.SubTasks); n > 0 {
		return float64(t.CompletedSubTasks()) / float64(n) * 100
	}

	if t.Status == model.StatusInProgress {
		if t.DueDate == nil {
			return midpoint
		}
		start := today
		if t.StartDate != nil {
			start = *t.StartDate
		}
		totalDays := model.DaysBetween(start, *t.DueDate)
		if totalDays <= 0 {
			return midpoint
		}
		raw := float64(model.DaysBetween(start, today)) / float64(totalDays) * 100
		if raw > interpolateCeil {
			return interpolateCeil
		}
		if raw < interpolateFloor {
			return interpolateFloor
		}
		return raw
	}

	return 0
}

package progress

import (
	"fmt"

	"tablero-cli/internal/model"
)

// State is the categorical urgency of a task relative to its due date.
type State string

const (
	StateDone    State = "done"
	StateNoDate  State = "no-date"
	StateOverdue State = "overdue"
	StateToday   State = "today"
	StateSoon    State = "soon"
	StateOnTime  State = "on-time"
)

// Color is an abstract color token; renderers map it to a concrete style.
type Color string

const (
	ColorGreen  Color = "green"
	ColorGray   Color = "gray"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
)

type Badge struct {
	State State `json:"state"`
	Color Color `json:"color"`
}

// soonWindowDays is how close a due date must be to count as "soon".
const soonWindowDays = 3

// Classify labels a task's urgency. It must be called with the same today
// value as Progress within one render pass so a task's badge and its
// progress bar never disagree.
func Classify(t *model.Task, today model.Date) Badge {
	if t.Status == model.StatusDone {
		return Badge{State: StateDone, Color: ColorGreen}
	}
	if t.DueDate == nil {
		return Badge{State: StateNoDate, Color: ColorGray}
	}
	switch days := t.DueDate.DaysUntil(today); {
	case days < 0:
		return Badge{State: StateOverdue, Color: ColorRed}
	case days == 0:
		return Badge{State: StateToday, Color: ColorOrange}
	case days <= soonWindowDays:
		return Badge{State: StateSoon, Color: ColorYellow}
	default:
		return Badge{State: StateOnTime, Color: ColorBlue}
	}
}

// PriorityColor maps a task priority to its color token (gray when unset).
func PriorityColor(p model.Priority) Color {
	switch p {
	case model.PriorityHigh:
		return ColorRed
	case model.PriorityMedium:
		return ColorYellow
	case model.PriorityLow:
		return ColorGreen
	default:
		return ColorGray
	}
}

// BarColor is the color for a task's progress bar: green once done,
// otherwise the urgency color (gray falls back to blue so idle bars do not
// render as disabled).
func BarColor(t *model.Task, today model.Date) Color {
	if t.Status == model.StatusDone {
		return ColorGreen
	}
	if c := Classify(t, today).Color; c != ColorGray {
		return c
	}
	return ColorBlue
}

// DueLabel renders a due date relative to today ("today", "in 3 days", ...).
// Dates a week or more out fall back to "02 Jan".
func DueLabel(due *model.Date, today model.Date) string {
	if due == nil {
		return "-"
	}
	switch days := due.DaysUntil(today); {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days < 7:
		return fmt.Sprintf("in %d days", days)
	default:
		return due.Time().Format("02 Jan")
	}
}

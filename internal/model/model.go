package model

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists the valid task statuses in board-column order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone}
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleMember   Role = "member"
	RoleDirector Role = "director"
)

func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember, RoleDirector:
		return true
	default:
		return false
	}
}

// Profile is a local identity: who is acting, shown by display name.
// It stands in for the hosted auth profile record.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Client    string    `json:"client,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// FileRef is a reference to an uploaded file; storage itself is external.
type FileRef struct {
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type SubTask struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Files       []FileRef `json:"files,omitempty"`
}

// Task is a unit of work. Progress is never stored; it is derived on read
// (internal/progress) from status, subtasks and dates.
//
// Tasks reference their project by stable id. The project display name is
// presentation-only and lives on Project; two projects sharing a name must
// not have their tasks merged.
type Task struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Assignee is a display name, not a stable id. Matching against it is
	// how edit authorization works (internal/perm).
	Assignee       string `json:"assignee,omitempty"`
	AssigneeAvatar string `json:"assigneeAvatar,omitempty"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority,omitempty"`

	StartDate *Date `json:"startDate,omitempty"`
	DueDate   *Date `json:"dueDate,omitempty"`

	// Budget and ActualCost are non-negative when present.
	Budget     *float64 `json:"budget,omitempty"`
	ActualCost *float64 `json:"actualCost,omitempty"`

	SubTasks []SubTask `json:"subTasks,omitempty"`
	Files    []FileRef `json:"files,omitempty"`

	Active    bool      `json:"active"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindSubTask returns a pointer into t.SubTasks for the given id.
func (t *Task) FindSubTask(id string) (*SubTask, bool) {
	for i := range t.SubTasks {
		if t.SubTasks[i].ID == id {
			return &t.SubTasks[i], true
		}
	}
	return nil, false
}

// CompletedSubTasks counts subtasks with Completed set.
func (t *Task) CompletedSubTasks() int {
	n := 0
	for _, st := range t.SubTasks {
		if st.Completed {
			n++
		}
	}
	return n
}

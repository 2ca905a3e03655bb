// Package perm is the single authorization gate for task mutations. Every
// surface that offers an edit control (status select, subtask toggle, file
// upload, board drag, cost fields) must consult it rather than comparing
// names or roles inline.
package perm

import (
	"strings"

	"tablero-cli/internal/model"
)

// Policy names the roles allowed to edit tasks they are not assigned to.
// It is configuration, not a per-call-site constant.
type Policy struct {
	PrivilegedRoles []model.Role
}

// DefaultPolicy matches observed production behavior: directors, admins and
// managers may edit any task; members only their own.
func DefaultPolicy() Policy {
	return Policy{PrivilegedRoles: []model.Role{model.RoleDirector, model.RoleAdmin, model.RoleManager}}
}

func (p Policy) isPrivileged(r model.Role) bool {
	for _, pr := range p.PrivilegedRoles {
		if pr == r {
			return true
		}
	}
	return false
}

// CanEdit reports whether the actor may mutate the task: either the task is
// assigned to them (display-name match; the assignee field is a name, not a
// stable id) or they hold a privileged role.
func CanEdit(t *model.Task, actor *model.Profile, policy Policy) bool {
	if t == nil || actor == nil {
		return false
	}
	name := strings.TrimSpace(actor.DisplayName)
	if name != "" && name == strings.TrimSpace(t.Assignee) {
		return true
	}
	return policy.isPrivileged(actor.Role)
}

// CanEditBudget reports whether the actor may change budget or actual-cost
// figures. Stricter than CanEdit: being the assignee is not enough.
func CanEditBudget(actor *model.Profile, policy Policy) bool {
	if actor == nil {
		return false
	}
	return policy.isPrivileged(actor.Role)
}

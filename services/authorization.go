package services

import (
	"github.com/krushnapatil2025/Task-Manager/models"
)

// ScopeFor returns the task filter a principal's queries are restricted to.
// Admins see everything; members see only tasks they are assigned to.
func ScopeFor(p models.Principal) models.TaskFilter {
	if p.IsAdmin() {
		return models.TaskFilter{}
	}
	return models.TaskFilter{AssignedTo: p.ID}
}

// CanMutateChecklist reports whether the principal may replace the task's
// checklist: admins always, members only when assigned to the task.
func CanMutateChecklist(p models.Principal, task *models.Task) bool {
	if p.IsAdmin() {
		return true
	}
	return task.IsAssignedTo(p.ID)
}

// CanMutateStatus reports whether the principal may set the task's status.
// Membership is checked against the full assignee set.
func CanMutateStatus(p models.Principal, task *models.Task) bool {
	if p.IsAdmin() {
		return true
	}
	return task.IsAssignedTo(p.ID)
}

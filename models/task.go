package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TodoItem is a single checklist entry on a task.
type TodoItem struct {
	Title     string `json:"title" bson:"title"`
	Completed bool   `json:"completed" bson:"completed"`
}

type Task struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title         string               `json:"title" bson:"title"`
	Description   string               `json:"description" bson:"description"`
	Priority      TaskPriority         `json:"priority" bson:"priority"`
	Status        TaskStatus           `json:"status" bson:"status"`
	DueDate       time.Time            `json:"dueDate" bson:"dueDate"`
	AssignedTo    []primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	TodoChecklist []TodoItem           `json:"todoChecklist" bson:"todoChecklist"`
	Attachments   []string             `json:"attachments" bson:"attachments"`
	Progress      int                  `json:"progress" bson:"progress"`
	CreatedBy     primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsAssignedTo reports whether the given user appears in the task's assignee set.
func (t *Task) IsAssignedTo(userID primitive.ObjectID) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// TaskDetails is a task with its assignee IDs resolved to user summaries.
// The outer AssignedTo shadows the embedded ID slice in the JSON output.
type TaskDetails struct {
	Task       `bson:",inline"`
	AssignedTo []UserSummary `json:"assignedTo"`
}

// TaskListItem is the list representation: a populated task annotated with the
// number of completed checklist items.
type TaskListItem struct {
	TaskDetails
	CompletedTodoCount int `json:"completedTodoCount"`
}

// StatusSummary carries the per-status counts returned alongside a task list.
type StatusSummary struct {
	All             int64 `json:"all"`
	PendingTasks    int64 `json:"pendingTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
}

// TaskFilter describes a task query without committing to a storage
// representation. Zero values mean "no restriction"; repositories translate the
// populated fields to their own query language.
type TaskFilter struct {
	AssignedTo primitive.ObjectID
	Status     TaskStatus
	StatusNot  TaskStatus
	DueBefore  time.Time
}

// WithStatus returns a copy of the filter restricted to the given status.
func (f TaskFilter) WithStatus(status TaskStatus) TaskFilter {
	f.Status = status
	return f
}

// TaskSummary is the reduced shape used for the dashboard's recent-task list.
type TaskSummary struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Status    TaskStatus         `json:"status" bson:"status"`
	Priority  TaskPriority       `json:"priority" bson:"priority"`
	DueDate   time.Time          `json:"dueDate" bson:"dueDate"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

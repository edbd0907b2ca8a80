package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

type TaskService struct {
	tasks TaskStore
	users UserStore
}

func NewTaskService(tasks TaskStore, users UserStore) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// CreateTaskInput carries the writable task fields supplied by the client.
type CreateTaskInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	DueDate       time.Time           `json:"dueDate"`
	AssignedTo    []string            `json:"assignedTo"`
	TodoChecklist []models.TodoItem   `json:"todoChecklist"`
	Attachments   []string            `json:"attachments"`
}

// UpdateTaskInput carries a partial update: zero-valued fields are left
// untouched, so a field cannot be cleared through this path.
type UpdateTaskInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	Status        models.TaskStatus   `json:"status"`
	DueDate       time.Time           `json:"dueDate"`
	AssignedTo    []string            `json:"assignedTo"`
	TodoChecklist []models.TodoItem   `json:"todoChecklist"`
	Attachments   []string            `json:"attachments"`
}

// List returns the tasks visible to the principal, optionally restricted to a
// single status, each annotated with its completed-checklist count, together
// with per-status summary counts under the same scope.
func (s *TaskService) List(ctx context.Context, p models.Principal, statusFilter models.TaskStatus) ([]models.TaskListItem, *models.StatusSummary, error) {
	scope := ScopeFor(p)

	filter := scope
	if statusFilter != "" {
		filter.Status = statusFilter
	}

	tasks, err := s.tasks.Find(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}

	details, err := s.populate(ctx, tasks)
	if err != nil {
		return nil, nil, err
	}

	items := make([]models.TaskListItem, 0, len(details))
	for _, d := range details {
		completed := 0
		for _, item := range d.TodoChecklist {
			if item.Completed {
				completed++
			}
		}
		items = append(items, models.TaskListItem{TaskDetails: d, CompletedTodoCount: completed})
	}

	// The overall count ignores the status filter; the per-status counts
	// override it, so a filtered list still reports the full breakdown.
	summary := &models.StatusSummary{}
	if summary.All, err = s.tasks.Count(ctx, scope); err != nil {
		return nil, nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if summary.PendingTasks, err = s.tasks.Count(ctx, filter.WithStatus(models.StatusPending)); err != nil {
		return nil, nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	if summary.InProgressTasks, err = s.tasks.Count(ctx, filter.WithStatus(models.StatusInProgress)); err != nil {
		return nil, nil, fmt.Errorf("failed to count in-progress tasks: %w", err)
	}
	if summary.CompletedTasks, err = s.tasks.Count(ctx, filter.WithStatus(models.StatusCompleted)); err != nil {
		return nil, nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return items, summary, nil
}

// GetByID fetches a single task with its assignee details resolved.
func (s *TaskService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TaskDetails, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.populate(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create validates the input and persists a new task owned by the principal.
// Checklist items always start unchecked regardless of the submitted flags.
func (s *TaskService) Create(ctx context.Context, p models.Principal, in CreateTaskInput) (*models.Task, error) {
	assignedTo, err := s.resolveAssignees(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	checklist := make([]models.TodoItem, 0, len(in.TodoChecklist))
	for _, item := range in.TodoChecklist {
		checklist = append(checklist, models.TodoItem{Title: item.Title, Completed: false})
	}

	now := time.Now()
	task := &models.Task{
		ID:            primitive.NewObjectID(),
		Title:         in.Title,
		Description:   in.Description,
		Priority:      priority,
		Status:        models.StatusPending,
		DueDate:       in.DueDate,
		AssignedTo:    assignedTo,
		TodoChecklist: checklist,
		Attachments:   in.Attachments,
		Progress:      0,
		CreatedBy:     p.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to a task. Only fields supplied with
// non-zero values overwrite the stored ones; the status, when supplied, is
// written verbatim without recomputing from the checklist.
func (s *TaskService) Update(ctx context.Context, p models.Principal, id primitive.ObjectID, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Priority != "" {
		if err := validatePriority(in.Priority); err != nil {
			return nil, err
		}
		task.Priority = in.Priority
	}
	if in.Status != "" {
		if err := validateStatus(in.Status); err != nil {
			return nil, err
		}
		task.Status = in.Status
	}
	if !in.DueDate.IsZero() {
		task.DueDate = in.DueDate
	}
	if in.TodoChecklist != nil {
		task.TodoChecklist = in.TodoChecklist
	}
	if in.Attachments != nil {
		task.Attachments = in.Attachments
	}
	if in.AssignedTo != nil {
		assignedTo, err := s.resolveAssignees(ctx, in.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignedTo
	}

	task.UpdatedAt = time.Now()
	if err := s.tasks.Replace(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes a task permanently.
func (s *TaskService) Delete(ctx context.Context, p models.Principal, id primitive.ObjectID) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// UpdateStatus sets a task's status on behalf of an assigned member or an
// admin. Setting Completed force-completes the checklist and pins progress.
func (s *TaskService) UpdateStatus(ctx context.Context, p models.Principal, id primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutateStatus(p, task) {
		return nil, ErrForbidden
	}

	if status == "" {
		status = task.Status
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	ApplyStatusOverride(task, status)

	task.UpdatedAt = time.Now()
	if err := s.tasks.Replace(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

// UpdateChecklist replaces a task's checklist wholesale and recomputes the
// derived progress and status from the new items.
func (s *TaskService) UpdateChecklist(ctx context.Context, p models.Principal, id primitive.ObjectID, items []models.TodoItem) (*models.TaskDetails, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanMutateChecklist(p, task) {
		return nil, ErrForbidden
	}

	task.TodoChecklist = items
	task.Progress, task.Status = RecomputeProgress(items)

	task.UpdatedAt = time.Now()
	if err := s.tasks.Replace(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task checklist: %w", err)
	}

	details, err := s.populate(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// resolveAssignees validates the submitted assignee IDs and returns them as
// object IDs. The set must be non-empty, well-formed and reference existing
// users.
func (s *TaskService) resolveAssignees(ctx context.Context, raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, newValidationError("assignedTo", "must be a non-empty array of user IDs")
	}

	seen := make(map[primitive.ObjectID]bool, len(raw))
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, newValidationError("assignedTo", "contains invalid user IDs")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignees: %w", err)
	}
	if len(users) != len(ids) {
		return nil, newValidationError("assignedTo", "contains unknown user IDs")
	}

	return ids, nil
}

// populate resolves each task's assignee IDs to user summaries.
func (s *TaskService) populate(ctx context.Context, tasks []models.Task) ([]models.TaskDetails, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, task := range tasks {
		for _, id := range task.AssignedTo {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	byID := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assignees: %w", err)
		}
		for _, u := range users {
			byID[u.ID] = u.Summary()
		}
	}

	details := make([]models.TaskDetails, 0, len(tasks))
	for _, task := range tasks {
		assignees := make([]models.UserSummary, 0, len(task.AssignedTo))
		for _, id := range task.AssignedTo {
			if summary, ok := byID[id]; ok {
				assignees = append(assignees, summary)
			}
		}
		details = append(details, models.TaskDetails{Task: task, AssignedTo: assignees})
	}
	return details, nil
}

func validatePriority(p models.TaskPriority) error {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	}
	return newValidationError("priority", "must be one of low, medium, high")
}

func validateStatus(s models.TaskStatus) error {
	switch s {
	case models.StatusPending, models.StatusInProgress, models.StatusCompleted:
		return nil
	}
	return newValidationError("status", "must be one of Pending, In Progress, Completed")
}

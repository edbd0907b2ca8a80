package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

type UserService struct {
	users UserStore
	tasks TaskStore
}

func NewUserService(users UserStore, tasks TaskStore) *UserService {
	return &UserService{users: users, tasks: tasks}
}

// GetMembers returns every member account annotated with the number of their
// assigned tasks in each status.
func (s *UserService) GetMembers(ctx context.Context) ([]models.UserWithTaskCounts, error) {
	members, err := s.users.FindMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve members: %w", err)
	}

	result := make([]models.UserWithTaskCounts, 0, len(members))
	for _, member := range members {
		scope := models.TaskFilter{AssignedTo: member.ID}

		entry := models.UserWithTaskCounts{User: member}
		if entry.PendingTasks, err = s.tasks.Count(ctx, scope.WithStatus(models.StatusPending)); err != nil {
			return nil, fmt.Errorf("failed to count pending tasks for user %s: %w", member.ID.Hex(), err)
		}
		if entry.InProgressTasks, err = s.tasks.Count(ctx, scope.WithStatus(models.StatusInProgress)); err != nil {
			return nil, fmt.Errorf("failed to count in-progress tasks for user %s: %w", member.ID.Hex(), err)
		}
		if entry.CompletedTasks, err = s.tasks.Count(ctx, scope.WithStatus(models.StatusCompleted)); err != nil {
			return nil, fmt.Errorf("failed to count completed tasks for user %s: %w", member.ID.Hex(), err)
		}
		result = append(result, entry)
	}

	return result, nil
}

// GetUserByID fetches a single user record.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// DeleteUser removes a user account. Tasks where the user was the sole
// assignee are deleted; shared tasks just lose the assignee.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.RemoveAssignee(ctx, id); err != nil {
		return fmt.Errorf("failed to detach user from tasks: %w", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

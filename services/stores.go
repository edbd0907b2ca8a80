package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

// TaskStore is the persistence surface the task services run against. Stores
// return ErrTaskNotFound when a lookup misses.
type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	Find(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Replace(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, filter models.TaskFilter) (int64, error)
	StatusCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskStatus]int64, error)
	PriorityCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskPriority]int64, error)
	Recent(ctx context.Context, scope models.TaskFilter, limit int64) ([]models.TaskSummary, error)
	RemoveAssignee(ctx context.Context, userID primitive.ObjectID) error
}

// UserStore is the persistence surface for user records. Stores return
// ErrUserNotFound when a lookup misses.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindMembers(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

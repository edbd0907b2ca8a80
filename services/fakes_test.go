package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

// fakeTaskStore is an in-memory TaskStore so the services can be exercised
// without a database.
type fakeTaskStore struct {
	tasks []*models.Task
	err   error

	inserts  int
	replaces int
	deletes  int
}

func (f *fakeTaskStore) matches(filter models.TaskFilter, t *models.Task) bool {
	if !filter.AssignedTo.IsZero() && !t.IsAssignedTo(filter.AssignedTo) {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.StatusNot != "" && t.Status == filter.StatusNot {
		return false
	}
	if !filter.DueBefore.IsZero() && !t.DueDate.Before(filter.DueBefore) {
		return false
	}
	return true
}

func (f *fakeTaskStore) Insert(ctx context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	f.inserts++
	copied := *task
	f.tasks = append(f.tasks, &copied)
	return nil
}

func (f *fakeTaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.tasks {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (f *fakeTaskStore) Find(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Task
	for _, t := range f.tasks {
		if f.matches(filter, t) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (f *fakeTaskStore) Replace(ctx context.Context, task *models.Task) error {
	if f.err != nil {
		return f.err
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.replaces++
			copied := *task
			f.tasks[i] = &copied
			return nil
		}
	}
	return ErrTaskNotFound
}

func (f *fakeTaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.deletes++
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

func (f *fakeTaskStore) Count(ctx context.Context, filter models.TaskFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, t := range f.tasks {
		if f.matches(filter, t) {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskStore) StatusCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskStatus]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[models.TaskStatus]int64)
	for _, t := range f.tasks {
		if f.matches(scope, t) {
			counts[t.Status]++
		}
	}
	return counts, nil
}

func (f *fakeTaskStore) PriorityCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskPriority]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[models.TaskPriority]int64)
	for _, t := range f.tasks {
		if f.matches(scope, t) {
			counts[t.Priority]++
		}
	}
	return counts, nil
}

func (f *fakeTaskStore) Recent(ctx context.Context, scope models.TaskFilter, limit int64) ([]models.TaskSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []*models.Task
	for _, t := range f.tasks {
		if f.matches(scope, t) {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}

	summaries := make([]models.TaskSummary, 0, len(matched))
	for _, t := range matched {
		summaries = append(summaries, models.TaskSummary{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			DueDate:   t.DueDate,
			CreatedAt: t.CreatedAt,
		})
	}
	return summaries, nil
}

func (f *fakeTaskStore) RemoveAssignee(ctx context.Context, userID primitive.ObjectID) error {
	if f.err != nil {
		return f.err
	}
	var kept []*models.Task
	for _, t := range f.tasks {
		if len(t.AssignedTo) == 1 && t.AssignedTo[0] == userID {
			continue
		}
		var assignees []primitive.ObjectID
		for _, id := range t.AssignedTo {
			if id != userID {
				assignees = append(assignees, id)
			}
		}
		t.AssignedTo = assignees
		kept = append(kept, t)
	}
	f.tasks = kept
	return nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users   []*models.User
	inserts int
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.inserts++
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var result []models.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				result = append(result, *u)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeUserStore) FindMembers(ctx context.Context) ([]models.User, error) {
	var result []models.User
	for _, u := range f.users {
		if u.Role == models.RoleMember {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			copied := *user
			f.users[i] = &copied
			return nil
		}
	}
	return ErrUserNotFound
}

func (f *fakeUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

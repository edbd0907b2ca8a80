package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krushnapatil2025/Task-Manager/models"
	"github.com/krushnapatil2025/Task-Manager/services"
)

// TaskRepo is the MongoDB-backed task store.
type TaskRepo struct {
	collection *mongo.Collection
}

func NewTaskRepo(collection *mongo.Collection) *TaskRepo {
	return &TaskRepo{collection: collection}
}

// taskQuery translates a neutral task filter into a Mongo query document.
func taskQuery(f models.TaskFilter) bson.M {
	query := bson.M{}
	if !f.AssignedTo.IsZero() {
		query["assignedTo"] = f.AssignedTo
	}
	if f.Status != "" && f.StatusNot != "" {
		query["status"] = bson.M{"$eq": f.Status, "$ne": f.StatusNot}
	} else if f.Status != "" {
		query["status"] = f.Status
	} else if f.StatusNot != "" {
		query["status"] = bson.M{"$ne": f.StatusNot}
	}
	if !f.DueBefore.IsZero() {
		query["dueDate"] = bson.M{"$lt": f.DueBefore}
	}
	return query
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}
	return &task, nil
}

func (r *TaskRepo) Find(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, taskQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return tasks, nil
}

func (r *TaskRepo) Replace(ctx context.Context, task *models.Task) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) Count(ctx context.Context, filter models.TaskFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, taskQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %v", err)
	}
	return count, nil
}

// StatusCounts groups the tasks in scope by status.
func (r *TaskRepo) StatusCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskStatus]int64, error) {
	rows, err := r.groupCounts(ctx, scope, "$status")
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[models.TaskStatus(row.Key)] = row.Count
	}
	return counts, nil
}

// PriorityCounts groups the tasks in scope by priority.
func (r *TaskRepo) PriorityCounts(ctx context.Context, scope models.TaskFilter) (map[models.TaskPriority]int64, error) {
	rows, err := r.groupCounts(ctx, scope, "$priority")
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskPriority]int64, len(rows))
	for _, row := range rows {
		counts[models.TaskPriority(row.Key)] = row.Count
	}
	return counts, nil
}

type groupCountRow struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *TaskRepo) groupCounts(ctx context.Context, scope models.TaskFilter, field string) ([]groupCountRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: taskQuery(scope)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var rows []groupCountRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %v", err)
	}
	return rows, nil
}

// Recent returns the newest tasks in scope, reduced to their summary fields.
func (r *TaskRepo) Recent(ctx context.Context, scope models.TaskFilter, limit int64) ([]models.TaskSummary, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetProjection(bson.M{"title": 1, "status": 1, "priority": 1, "dueDate": 1, "createdAt": 1})

	cursor, err := r.collection.Find(ctx, taskQuery(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var summaries []models.TaskSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode recent tasks: %v", err)
	}
	return summaries, nil
}

// RemoveAssignee deletes tasks where the user is the only assignee and pulls
// the user from the assignee set of every remaining task.
func (r *TaskRepo) RemoveAssignee(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"assignedTo": bson.A{userID}}); err != nil {
		return fmt.Errorf("failed to delete solely assigned tasks: %v", err)
	}

	update := bson.M{"$pull": bson.M{"assignedTo": userID}}
	if _, err := r.collection.UpdateMany(ctx, bson.M{"assignedTo": userID}, update); err != nil {
		return fmt.Errorf("failed to remove user from tasks: %v", err)
	}
	return nil
}

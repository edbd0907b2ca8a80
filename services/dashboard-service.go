package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/krushnapatil2025/Task-Manager/models"
)

const recentTaskLimit = 10

type DashboardService struct {
	tasks   TaskStore
	breaker *gobreaker.CircuitBreaker
}

// NewDashboardService wires the aggregator to its store. The breaker guards
// the query fan-out so a struggling database sheds dashboard load instead of
// queueing it; pass nil to run without one.
func NewDashboardService(tasks TaskStore, breaker *gobreaker.CircuitBreaker) *DashboardService {
	return &DashboardService{tasks: tasks, breaker: breaker}
}

// SummarizeFor aggregates dashboard data within the principal's scope.
func (s *DashboardService) SummarizeFor(ctx context.Context, p models.Principal) (*models.DashboardData, error) {
	return s.Summarize(ctx, ScopeFor(p))
}

// SummarizeAll aggregates dashboard data over every task, unscoped.
func (s *DashboardService) SummarizeAll(ctx context.Context) (*models.DashboardData, error) {
	return s.Summarize(ctx, models.TaskFilter{})
}

// Summarize computes the statistics, distribution charts and recent-task list
// for the given scope. Each query is independent; counts under concurrent
// writes may reflect slightly different points in time.
func (s *DashboardService) Summarize(ctx context.Context, scope models.TaskFilter) (*models.DashboardData, error) {
	data := &models.DashboardData{}

	err := s.execute(func() error {
		var err error
		if data.Statistics.TotalTasks, err = s.tasks.Count(ctx, scope); err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if data.Statistics.PendingTasks, err = s.tasks.Count(ctx, scope.WithStatus(models.StatusPending)); err != nil {
			return fmt.Errorf("failed to count pending tasks: %w", err)
		}
		if data.Statistics.CompletedTasks, err = s.tasks.Count(ctx, scope.WithStatus(models.StatusCompleted)); err != nil {
			return fmt.Errorf("failed to count completed tasks: %w", err)
		}

		overdue := scope
		overdue.DueBefore = time.Now()
		overdue.StatusNot = models.StatusCompleted
		if data.Statistics.OverdueTasks, err = s.tasks.Count(ctx, overdue); err != nil {
			return fmt.Errorf("failed to count overdue tasks: %w", err)
		}

		statusCounts, err := s.tasks.StatusCounts(ctx, scope)
		if err != nil {
			return fmt.Errorf("failed to aggregate status distribution: %w", err)
		}
		data.Charts.TaskDistribution = statusDistribution(statusCounts, data.Statistics.TotalTasks)

		priorityCounts, err := s.tasks.PriorityCounts(ctx, scope)
		if err != nil {
			return fmt.Errorf("failed to aggregate priority distribution: %w", err)
		}
		data.Charts.TaskPriorityLevels = priorityDistribution(priorityCounts)

		if data.RecentTasks, err = s.tasks.Recent(ctx, scope, recentTaskLimit); err != nil {
			return fmt.Errorf("failed to fetch recent tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *DashboardService) execute(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// statusDistribution zero-fills every status key (whitespace stripped, so
// "In Progress" becomes "InProgress") and adds the All total.
func statusDistribution(counts map[models.TaskStatus]int64, total int64) map[string]int64 {
	dist := make(map[string]int64, 4)
	for _, status := range []models.TaskStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		key := strings.ReplaceAll(string(status), " ", "")
		dist[key] = counts[status]
	}
	dist["All"] = total
	return dist
}

func priorityDistribution(counts map[models.TaskPriority]int64) map[string]int64 {
	dist := make(map[string]int64, 3)
	for _, priority := range []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		dist[string(priority)] = counts[priority]
	}
	return dist
}

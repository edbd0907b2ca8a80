package services

import (
	"math"

	"github.com/krushnapatil2025/Task-Manager/models"
)

// RecomputeProgress derives a task's progress percentage and status from a
// checklist snapshot. An empty checklist means 0% and Pending.
func RecomputeProgress(items []models.TodoItem) (int, models.TaskStatus) {
	if len(items) == 0 {
		return 0, models.StatusPending
	}

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	progress := int(math.Round(float64(completed) / float64(len(items)) * 100))

	switch {
	case progress == 100:
		return progress, models.StatusCompleted
	case progress == 0:
		return progress, models.StatusPending
	default:
		return progress, models.StatusInProgress
	}
}

// ApplyStatusOverride sets the requested status directly on the task. Setting
// Completed force-completes every checklist item and pins progress to 100;
// any other status is written verbatim, without recomputing from the checklist.
func ApplyStatusOverride(task *models.Task, status models.TaskStatus) {
	task.Status = status

	if status == models.StatusCompleted {
		for i := range task.TodoChecklist {
			task.TodoChecklist[i].Completed = true
		}
		task.Progress = 100
	}
}

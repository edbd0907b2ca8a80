package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
	"github.com/krushnapatil2025/Task-Manager/services"
)

type TaskHandler struct {
	service   *services.TaskService
	dashboard *services.DashboardService
}

func NewTaskHandler(service *services.TaskService, dashboard *services.DashboardService) *TaskHandler {
	return &TaskHandler{service: service, dashboard: dashboard}
}

func taskIDFromRequest(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetTasks lists the tasks visible to the caller, optionally filtered by the
// status query parameter, together with the per-status summary counts.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	statusFilter := models.TaskStatus(r.URL.Query().Get("status"))

	tasks, summary, err := h.service.List(r.Context(), principal, statusFilter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":         tasks,
		"statusSummary": summary,
	})
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var in services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.Create(r.Context(), principal, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var in services.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.Update(r.Context(), principal, id, in)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Task updated successfully",
		"updatedTask": task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully")
}

// UpdateTaskStatus sets a task's status. Assigned members and admins only;
// setting Completed force-completes the checklist.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var request struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), principal, id, request.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task status updated successfully",
		"task":    task,
	})
}

// UpdateTaskChecklist replaces a task's checklist and recomputes its progress.
func (h *TaskHandler) UpdateTaskChecklist(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var request struct {
		TodoChecklist []models.TodoItem `json:"todoChecklist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "todoChecklist must be an array")
		return
	}
	if request.TodoChecklist == nil {
		respondMessage(w, http.StatusBadRequest, "todoChecklist must be an array")
		return
	}

	task, err := h.service.UpdateChecklist(r.Context(), principal, id, request.TodoChecklist)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task checklist updated successfully",
		"task":    task,
	})
}

// GetDashboardData returns the global aggregation for admins.
func (h *TaskHandler) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.SummarizeAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// GetUserDashboardData returns the aggregation scoped to the caller.
func (h *TaskHandler) GetUserDashboardData(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	data, err := h.dashboard.SummarizeFor(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}

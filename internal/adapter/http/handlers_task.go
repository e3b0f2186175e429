package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/domain/task"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// CreateTask handles POST /api/projects/{projectId}/tasks.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.CreateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	t, err := h.Tasks.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "projectId"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, t)
}

// ListTasks handles GET /api/projects/{projectId}/tasks with optional
// status, priority and assignedTo filters.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := task.Filter{
		Status:     q.Get("status"),
		Priority:   task.Priority(q.Get("priority")),
		AssignedTo: q.Get("assignedTo"),
	}
	tasks, err := h.Tasks.List(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "projectId"), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, tasks)
}

// UpdateTaskStatus handles PATCH /api/tasks/{taskId}/status.
func (h *Handlers) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.StatusRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	t, err := h.Tasks.UpdateStatus(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "taskId"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task status updated", t)
}

// UpdateTask handles PUT /api/tasks/{taskId}.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.UpdateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	t, err := h.Tasks.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "taskId"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task updated successfully", t)
}

// DeleteTask handles DELETE /api/tasks/{taskId}.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "taskId")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully", nil)
}

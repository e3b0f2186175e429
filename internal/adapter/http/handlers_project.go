package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/domain/project"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// CreateProject handles POST /api/projects.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[project.CreateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	p, err := h.Projects.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

// ListProjects handles GET /api/projects.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{projectId}.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Projects.Get(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "projectId"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// UpdateProject handles PUT /api/projects/{projectId}.
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[project.UpdateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	p, err := h.Projects.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "projectId"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project updated successfully", p)
}

// DeleteProject handles DELETE /api/projects/{projectId}.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Projects.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "projectId")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted successfully", nil)
}

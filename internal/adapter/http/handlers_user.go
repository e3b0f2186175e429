package http

import (
	"net/http"

	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/middleware"
)

// CreateUser handles POST /api/users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	u, err := h.Users.Create(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "User created successfully", u)
}

// ListUsers handles GET /api/users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

// UpdateUser handles PUT /api/users/{userId}.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.UpdateRequest](w, r, h.bodyLimit())
	if !ok {
		return
	}
	u, err := h.Users.Update(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "userId"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User updated successfully", u)
}

// DeleteUser handles DELETE /api/users/{userId}.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), urlParam(r, "userId")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully", nil)
}

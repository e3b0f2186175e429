// Package task defines the Task domain entity.
package task

import (
	"strings"
	"time"

	"github.com/Strob0t/Workboard/internal/domain"
)

// DefaultStatus is applied on create. Status transitions are unconstrained:
// any text is stored verbatim.
const DefaultStatus = "todo"

// Priority orders tasks within a project.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns the sort position of p: high=1, medium=2, low=3.
// Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Task is a unit of work inside a project. TenantID always equals the
// owning project's tenant.
type Task struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	TenantID     string    `json:"tenantId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     Priority  `json:"priority"`
	AssignedTo   *string   `json:"assignedTo"`
	AssigneeName string    `json:"assigneeName,omitempty"`
	DueDate      *Date     `json:"dueDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateRequest holds the fields needed to create a new task.
type CreateRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=high medium low"`
	AssignedTo  string   `json:"assignedTo"`
	DueDate     *Date    `json:"dueDate"`
}

// Normalize trims the title and applies the default priority.
func (r *CreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.DueDate != nil && r.DueDate.IsZero() {
		r.DueDate = nil
	}
}

// Validate checks the title and priority.
func (r *CreateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// UpdateRequest is a partial update; nil fields keep their stored value.
// An empty AssignedTo unassigns the task and an empty DueDate clears it.
type UpdateRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitnil,min=1,max=255"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty" validate:"omitempty,max=50"`
	Priority    *Priority `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	AssignedTo  *string   `json:"assignedTo,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
}

// Normalize trims a present title.
func (r *UpdateRequest) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
}

// Validate checks the fields that are present.
func (r *UpdateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// Assignee returns the new assignee id when the request sets one.
func (r *UpdateRequest) Assignee() (string, bool) {
	if r.AssignedTo == nil || *r.AssignedTo == "" {
		return "", false
	}
	return *r.AssignedTo, true
}

// Apply merges the present fields onto t.
func (r *UpdateRequest) Apply(t *Task) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	if r.Priority != nil {
		t.Priority = *r.Priority
	}
	if r.AssignedTo != nil {
		if *r.AssignedTo == "" {
			t.AssignedTo = nil
		} else {
			id := *r.AssignedTo
			t.AssignedTo = &id
		}
		t.AssigneeName = ""
	}
	if r.DueDate != nil {
		if r.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			d := *r.DueDate
			t.DueDate = &d
		}
	}
}

// StatusRequest changes only the status of a task.
type StatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// Validate checks that a status is present.
func (r *StatusRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// Filter narrows a task listing. Empty fields match everything.
type Filter struct {
	Status     string
	Priority   Priority
	AssignedTo string
}

// Validate rejects unknown priorities.
func (f Filter) Validate() error {
	if f.Priority != "" && !f.Priority.Valid() {
		return domain.Validationf("priority must be one of: high medium low")
	}
	return nil
}

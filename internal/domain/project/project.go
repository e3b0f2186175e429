// Package project defines the Project domain entity.
package project

import (
	"strings"
	"time"

	"github.com/Strob0t/Workboard/internal/domain"
)

// DefaultStatus is applied when a project is created without a status.
// Any other status text is accepted verbatim.
const DefaultStatus = "active"

// Project belongs to exactly one tenant for its whole life.
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatorName string    `json:"creatorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest holds the fields needed to create a new project.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"max=50"`
}

// Normalize trims the name and applies the default status.
func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Status == "" {
		r.Status = DefaultStatus
	}
}

// Validate checks that the project name is present.
func (r *CreateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// UpdateRequest is a partial update; nil fields keep their stored value.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=50"`
}

// Normalize trims a present name so a blank one fails validation.
func (r *UpdateRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

// Validate checks the fields that are present.
func (r *UpdateRequest) Validate() error {
	return domain.ValidateStruct(r)
}

// Apply merges the present fields onto p.
func (r *UpdateRequest) Apply(p *Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

// Package audit defines the append-only audit trail entry.
package audit

import "time"

// Action names a mutating operation.
type Action string

const (
	ActionRegisterTenant   Action = "REGISTER_TENANT"
	ActionCreateUser       Action = "CREATE_USER"
	ActionUpdateUser       Action = "UPDATE_USER"
	ActionDeleteUser       Action = "DELETE_USER"
	ActionCreateProject    Action = "CREATE_PROJECT"
	ActionUpdateProject    Action = "UPDATE_PROJECT"
	ActionDeleteProject    Action = "DELETE_PROJECT"
	ActionCreateTask       Action = "CREATE_TASK"
	ActionUpdateTask       Action = "UPDATE_TASK"
	ActionUpdateTaskStatus Action = "UPDATE_TASK_STATUS"
	ActionDeleteTask       Action = "DELETE_TASK"
)

// Entity types recorded in the trail.
const (
	EntityTenant  = "tenant"
	EntityUser    = "user"
	EntityProject = "project"
	EntityTask    = "task"
)

// Entry is one immutable audit row. It is never updated or deleted.
type Entry struct {
	ID         string    `json:"id"`
	TenantID   *string   `json:"tenantId"`
	UserID     *string   `json:"userId"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	IPAddress  string    `json:"ipAddress"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Listing bounds for the audit log endpoint.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit maps a requested page size into [1, MaxLimit], using
// DefaultLimit for non-positive values.
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

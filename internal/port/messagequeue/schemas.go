package messagequeue

import "time"

// AuditEventPayload is the schema for audit.* messages.
type AuditEventPayload struct {
	ID         string    `json:"id"`
	TenantID   *string   `json:"tenant_id"`
	UserID     *string   `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	RequestID  string    `json:"request_id,omitempty"`
}

package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/Workboard/internal/domain/audit"
)

// AppendAudit inserts one immutable audit row.
func (s *Store) AppendAudit(ctx context.Context, e *audit.Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, tenant_id, user_id, action, entity_type, entity_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.TenantID, e.UserID, e.Action, nullIfEmpty(e.EntityType), nullIfEmpty(e.EntityID), nullIfEmpty(e.IPAddress), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit %s: %w", e.Action, err)
	}
	return nil
}

// ListAudit returns the tenant's most recent audit entries, newest first.
func (s *Store) ListAudit(ctx context.Context, tenantID string, limit int) ([]audit.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, tenant_id, user_id, action, COALESCE(entity_type, ''), COALESCE(entity_id, ''), COALESCE(ip_address, ''), created_at
		FROM audit_logs WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		entries = append(entries, e)
	}
	return orEmpty(entries), rows.Err()
}

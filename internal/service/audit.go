package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	wbotel "github.com/Strob0t/Workboard/internal/adapter/otel"
	"github.com/Strob0t/Workboard/internal/domain/audit"
	"github.com/Strob0t/Workboard/internal/domain/user"
	"github.com/Strob0t/Workboard/internal/logger"
	"github.com/Strob0t/Workboard/internal/port/database"
	"github.com/Strob0t/Workboard/internal/port/messagequeue"
	"github.com/Strob0t/Workboard/internal/resilience"
)

// AuditService appends entries to the audit trail. Recording is best effort:
// a failed append is logged and counted but never fails the caller's
// operation, which has already committed.
type AuditService struct {
	store   database.Store
	queue   messagequeue.Queue
	breaker *resilience.Breaker
	metrics *wbotel.Metrics
}

// NewAuditService creates a new AuditService.
func NewAuditService(store database.Store) *AuditService {
	return &AuditService{store: store}
}

// SetQueue enables mirroring of recorded entries to the message queue.
// The breaker may be nil.
func (s *AuditService) SetQueue(q messagequeue.Queue, b *resilience.Breaker) {
	s.queue = q
	s.breaker = b
}

// SetMetrics sets the optional metrics instruments.
func (s *AuditService) SetMetrics(m *wbotel.Metrics) {
	s.metrics = m
}

// Record assigns an id and timestamp to e and appends it.
func (s *AuditService) Record(ctx context.Context, e audit.Entry) {
	ctx, span := wbotel.StartAuditSpan(ctx, string(e.Action), e.EntityType, e.EntityID)
	defer span.End()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	if err := s.store.AppendAudit(ctx, &e); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "audit append failed",
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"error", err,
		)
		s.metrics.CountAuditFailure(ctx, string(e.Action))
		return
	}

	if s.queue != nil {
		s.publish(ctx, &e)
	}
}

func (s *AuditService) publish(ctx context.Context, e *audit.Entry) {
	data, err := json.Marshal(messagequeue.AuditEventPayload{
		ID:         e.ID,
		TenantID:   e.TenantID,
		UserID:     e.UserID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		IPAddress:  e.IPAddress,
		CreatedAt:  e.CreatedAt,
		RequestID:  logger.RequestID(ctx),
	})
	if err != nil {
		slog.ErrorContext(ctx, "audit event marshal failed", "id", e.ID, "error", err)
		return
	}

	subject := messagequeue.AuditSubject(e.EntityType)
	send := func(ctx context.Context) error { return s.queue.Publish(ctx, subject, data) }
	if s.breaker != nil {
		err = s.breaker.Execute(ctx, send)
	} else {
		err = send(ctx)
	}
	if err != nil {
		slog.WarnContext(ctx, "audit event publish failed", "subject", subject, "id", e.ID, "error", err)
	}
}

// List returns the most recent entries of the principal's tenant, newest first.
func (s *AuditService) List(ctx context.Context, p *user.Principal, limit int) ([]audit.Entry, error) {
	if err := user.Authorize(p, user.RoleTenantAdmin); err != nil {
		return nil, err
	}
	if err := user.RequireTenant(p); err != nil {
		return nil, err
	}
	entries, err := s.store.ListAudit(ctx, p.TenantID, audit.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}

// entryFor builds the audit entry for an action performed by p.
func entryFor(p *user.Principal, action audit.Action, entityType, entityID string) audit.Entry {
	return audit.Entry{
		TenantID:   p.TenantRef(),
		UserID:     p.UserRef(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  p.IPAddress,
	}
}

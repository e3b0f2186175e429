package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "workboard"

// Metrics holds all Workboard metric instruments.
type Metrics struct {
	AuditFailures     metric.Int64Counter
	QuotaRejections   metric.Int64Counter
	LoginFailures     metric.Int64Counter
	TenantsRegistered metric.Int64Counter
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AuditFailures, err = meter.Int64Counter("workboard.audit.failures",
		metric.WithDescription("Audit entries that could not be appended"))
	if err != nil {
		return nil, err
	}

	m.QuotaRejections, err = meter.Int64Counter("workboard.quota.rejections",
		metric.WithDescription("Creates rejected because a tenant limit was reached"))
	if err != nil {
		return nil, err
	}

	m.LoginFailures, err = meter.Int64Counter("workboard.login.failures",
		metric.WithDescription("Failed login attempts"))
	if err != nil {
		return nil, err
	}

	m.TenantsRegistered, err = meter.Int64Counter("workboard.tenants.registered",
		metric.WithDescription("Tenants onboarded"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// CountAuditFailure records one failed audit append for action.
func (m *Metrics) CountAuditFailure(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.AuditFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// CountQuotaRejection records one create rejected by the entity's tenant limit.
func (m *Metrics) CountQuotaRejection(ctx context.Context, entity string) {
	if m == nil {
		return
	}
	m.QuotaRejections.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}

// CountLoginFailure records one failed login with a coarse reason.
func (m *Metrics) CountLoginFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.LoginFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// CountTenantRegistered records one successful tenant onboarding.
func (m *Metrics) CountTenantRegistered(ctx context.Context) {
	if m == nil {
		return
	}
	m.TenantsRegistered.Add(ctx, 1)
}

package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "workboard"

// StartRegistrationSpan starts a span for tenant onboarding.
func StartRegistrationSpan(ctx context.Context, subdomain string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "tenant.register",
		trace.WithAttributes(attribute.String("tenant.subdomain", subdomain)),
	)
}

// StartLoginSpan starts a span for a login attempt.
func StartLoginSpan(ctx context.Context, subdomain string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "auth.login",
		trace.WithAttributes(attribute.String("tenant.subdomain", subdomain)),
	)
}

// StartAuditSpan starts a span for appending one audit entry.
func StartAuditSpan(ctx context.Context, action, entityType, entityID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "audit.record",
		trace.WithAttributes(
			attribute.String("audit.action", action),
			attribute.String("audit.entity_type", entityType),
			attribute.String("audit.entity_id", entityID),
		),
	)
}

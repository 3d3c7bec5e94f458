// Package metrics exposes the gateway's counters through the OpenTelemetry
// metric API. Exporter wiring is the deployment's concern.
package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/kingstalent/poster-gateway"

// Metrics holds the gateway's instruments. A zero-configured meter provider
// makes every method a no-op, so tests and development need no setup.
type Metrics struct {
	loginsStarted   metric.Int64Counter
	exchangesFailed metric.Int64Counter
	accessGranted   metric.Int64Counter
	accessDenied    metric.Int64Counter
}

// New creates the gateway instruments from the global meter provider.
func New() *Metrics {
	meter := otel.Meter(meterName)

	m := &Metrics{}
	m.loginsStarted, _ = meter.Int64Counter("gateway.logins.started",
		metric.WithDescription("Login round-trips initiated"))
	m.exchangesFailed, _ = meter.Int64Counter("gateway.exchanges.failed",
		metric.WithDescription("Token exchanges that did not produce a session"))
	m.accessGranted, _ = meter.Int64Counter("gateway.access.granted",
		metric.WithDescription("Callbacks that passed the allow-list check"))
	m.accessDenied, _ = meter.Int64Counter("gateway.access.denied",
		metric.WithDescription("Callbacks rejected by the allow-list check"))
	return m
}

func (m *Metrics) LoginStarted(ctx context.Context, tenantID string) {
	m.loginsStarted.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant", tenantID)))
}

func (m *Metrics) ExchangeFailed(ctx context.Context, tenantID string) {
	m.exchangesFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant", tenantID)))
}

func (m *Metrics) AccessGranted(ctx context.Context, tenantID string) {
	m.accessGranted.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant", tenantID)))
}

func (m *Metrics) AccessDenied(ctx context.Context, tenantID string) {
	m.accessDenied.Add(ctx, 1, metric.WithAttributes(attribute.String("tenant", tenantID)))
}

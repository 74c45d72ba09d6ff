package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
	// Registry receives the exporter's collectors. Nil uses a fresh
	// registry so repeated calls in tests do not collide.
	Registry *prometheus.Registry
}

// Metrics holds the service counters.
type Metrics struct {
	provider *sdkmetric.MeterProvider

	httpRequests       metric.Int64Counter
	contractsCreated   metric.Int64Counter
	paymentsRegistered metric.Int64Counter
	penaltiesApplied   metric.Int64Counter
}

// InitMetrics initializes the Prometheus exporter and the service counters.
// It returns an HTTP handler for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*Metrics, http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("observability: prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter(cfg.ServiceName)

	m := &Metrics{provider: provider}
	if m.httpRequests, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("HTTP requests by method, route and status")); err != nil {
		return nil, nil, err
	}
	if m.contractsCreated, err = meter.Int64Counter("loans_contracts_created_total",
		metric.WithDescription("Contracts opened")); err != nil {
		return nil, nil, err
	}
	if m.paymentsRegistered, err = meter.Int64Counter("loans_payments_registered_total",
		metric.WithDescription("Installment payments registered")); err != nil {
		return nil, nil, err
	}
	if m.penaltiesApplied, err = meter.Int64Counter("loans_penalties_applied_total",
		metric.WithDescription("Payments registered after their due date")); err != nil {
		return nil, nil, err
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m, handler, nil
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}

// RecordRequest counts one HTTP request.
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

// ContractCreated counts one opened contract.
func (m *Metrics) ContractCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.contractsCreated.Add(ctx, 1)
}

// PaymentRegistered counts one payment; late payments also count a penalty.
func (m *Metrics) PaymentRegistered(ctx context.Context, medium string, late bool) {
	if m == nil {
		return
	}
	m.paymentsRegistered.Add(ctx, 1, metric.WithAttributes(attribute.String("medium", medium)))
	if late {
		m.penaltiesApplied.Add(ctx, 1)
	}
}

package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/presentation/presentationtest"
	"github.com/prestamos/loan-service/internal/presentation/rest"
	"github.com/prestamos/loan-service/pkg/observability"
)

func TestHealthHandler(t *testing.T) {
	serve := func(h *rest.HealthHandler, path string) *httptest.ResponseRecorder {
		svc, _, _, _ := presentationtest.Services()
		router := rest.NewRouter(rest.RouterConfig{Services: svc, Health: h, Logger: zap.NewNop()})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("liveness", func(t *testing.T) {
		rec := serve(rest.NewHealthHandler("loan-service", nil, zap.NewNop()), "/healthz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","service":"loan-service"}`, rec.Body.String())
	})

	t.Run("ready when every check passes", func(t *testing.T) {
		h := rest.NewHealthHandler("loan-service", map[string]rest.ReadinessCheck{
			"postgres": func(context.Context) error { return nil },
		}, zap.NewNop())

		rec := serve(h, "/readyz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ready"`)
	})

	t.Run("unavailable when a check fails", func(t *testing.T) {
		h := rest.NewHealthHandler("loan-service", map[string]rest.ReadinessCheck{
			"postgres": func(context.Context) error { return errors.New("connection refused") },
			"redis":    func(context.Context) error { return nil },
		}, zap.NewNop())

		rec := serve(h, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "postgres")
		assert.NotContains(t, rec.Body.String(), `"redis"`)
	})
}

func TestRouter_ServesMetrics(t *testing.T) {
	m, handler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "loan-service",
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	svc, _, _, _ := presentationtest.Services()
	router := rest.NewRouter(rest.RouterConfig{
		Services:       svc,
		Metrics:        m,
		MetricsHandler: handler,
		Logger:         zap.NewNop(),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contracts", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/contracts"`)
}

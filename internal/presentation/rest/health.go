package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	service string
	checks  map[string]ReadinessCheck
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler creates a health check HTTP handler. Every check must pass
// for /readyz to report ready.
func NewHealthHandler(service string, checks map[string]ReadinessCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Register attaches health-check routes.
func (h *HealthHandler) Register(r gin.IRouter) {
	r.GET("/healthz", h.liveness)
	r.GET("/readyz", h.readiness)
}

func (h *HealthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	failed := map[string]string{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": h.service,
			"failed":  failed,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": h.service,
	})
}

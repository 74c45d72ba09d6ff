package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/presentation"
	"github.com/prestamos/loan-service/pkg/observability"
)

// Registrar attaches routes to a router group.
type Registrar interface {
	Register(r gin.IRouter)
}

// RouterConfig holds what the HTTP engine is assembled from. Metrics and
// MetricsHandler may be nil.
type RouterConfig struct {
	Services       presentation.Services
	Health         *HealthHandler
	Metrics        *observability.Metrics
	MetricsHandler http.Handler
	Logger         *zap.Logger
	// Extra registers non-API routes such as the web pages.
	Extra []Registrar
}

// NewRouter builds the gin engine serving /api, probes, /metrics and any
// extra registrars.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			logger.Error("panic while serving request",
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", rec),
			)
			reject(c, http.StatusInternalServerError, presentation.InternalErrorMessage)
		}),
		observability.GinMiddleware(logger, cfg.Metrics),
	)
	engine.NoRoute(func(c *gin.Context) {
		reject(c, http.StatusNotFound, "route not found")
	})

	if cfg.Health != nil {
		cfg.Health.Register(engine)
	}
	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := engine.Group("/api")
	for _, r := range []Registrar{
		NewBeneficiaryHandler(cfg.Services.Beneficiaries, logger),
		NewContractHandler(cfg.Services.Contracts, logger),
		NewPaymentHandler(cfg.Services.Payments, logger),
	} {
		r.Register(api)
	}

	for _, r := range cfg.Extra {
		r.Register(engine)
	}
	return engine
}

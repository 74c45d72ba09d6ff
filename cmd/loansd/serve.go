package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/application/usecase"
	"github.com/prestamos/loan-service/internal/domain/port"
	"github.com/prestamos/loan-service/internal/infrastructure/adapter"
	"github.com/prestamos/loan-service/internal/infrastructure/config"
	"github.com/prestamos/loan-service/internal/infrastructure/export"
	"github.com/prestamos/loan-service/internal/infrastructure/flash"
	eventkafka "github.com/prestamos/loan-service/internal/infrastructure/kafka"
	"github.com/prestamos/loan-service/internal/infrastructure/messaging"
	pgrepo "github.com/prestamos/loan-service/internal/infrastructure/persistence/postgres"
	"github.com/prestamos/loan-service/internal/presentation"
	grpcpresentation "github.com/prestamos/loan-service/internal/presentation/grpc"
	"github.com/prestamos/loan-service/internal/presentation/rest"
	"github.com/prestamos/loan-service/internal/presentation/web"
	"github.com/prestamos/loan-service/migrations"
	pkgkafka "github.com/prestamos/loan-service/pkg/kafka"
	"github.com/prestamos/loan-service/pkg/money"
	"github.com/prestamos/loan-service/pkg/observability"
	pkgpostgres "github.com/prestamos/loan-service/pkg/postgres"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web pages, the REST API and gRPC",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving", Value: true},
			&cli.BoolFlag{Name: "grpc-reflection", Usage: "register the gRPC reflection service"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 1. Configuration and logging.
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := observability.InitLogger(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting loan-service",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("timezone", cfg.Location().String()),
	)

	metrics, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Registry:    prometheus.NewRegistry(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = metrics.Shutdown(context.Background()) }()

	// 2. Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.Postgres())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if c.Bool("migrate") {
		if err := pkgpostgres.RunMigrations(cfg.Postgres().DSN(), migrations.FS); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	// 3. Events and flash messages.
	publisher, closePublisher, err := newPublisher(cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer closePublisher()

	checks := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}
	flashStore, closeFlash := newFlashStore(cfg, checks)
	defer closeFlash()

	// 4. Application services.
	services := newServices(cfg, pool, publisher)

	// 5. Transports.
	pages, err := web.NewHandler(services, flashStore, money.Default, logger)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := rest.NewRouter(rest.RouterConfig{
		Services:       services,
		Health:         rest.NewHealthHandler(cfg.ServiceName, checks, logger),
		Metrics:        metrics,
		MetricsHandler: metricsHandler,
		Logger:         logger,
		Extra:          []rest.Registrar{pages},
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpcpresentation.NewServer(
		grpcpresentation.NewLoanHandler(services.Contracts, services.Payments),
		logger,
		grpcpresentation.ServerOptions{Reflection: c.Bool("grpc-reflection")},
	)

	// 6. Run until a signal or a server failure.
	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", zap.Error(runErr))
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", zap.Error(err))
	}

	logger.Info("loan-service stopped")
	return runErr
}

// newPublisher sends events to Kafka when brokers are configured and to the
// log otherwise. Either way events are counted and delivery failures never
// fail a request.
func newPublisher(cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) (port.EventPublisher, func(), error) {
	var (
		sink    port.EventPublisher
		closeFn = func() {}
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkgkafka.NewProducer(cfg.KafkaClient())
		if err != nil {
			return nil, nil, fmt.Errorf("create kafka producer: %w", err)
		}
		sink = eventkafka.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		closeFn = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("close kafka producer", zap.Error(err))
			}
		}
		logger.Info("publishing events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	} else {
		sink = messaging.NewLogEventPublisher(logger)
		logger.Info("kafka not configured, logging events")
	}

	publisher := messaging.NewBestEffortPublisher(messaging.NewMeteredPublisher(sink, metrics), logger)
	return publisher, closeFn, nil
}

// newFlashStore keeps flash messages in Redis when an address is configured,
// adding a readiness check for it, and in memory otherwise.
func newFlashStore(cfg config.Config, checks map[string]rest.ReadinessCheck) (flash.Store, func()) {
	if cfg.Redis.Addr == "" {
		return flash.NewMemoryStore(cfg.Redis.FlashTTL), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return flash.NewRedisStore(client, cfg.Redis.FlashTTL), func() { _ = client.Close() }
}

func newServices(cfg config.Config, pool *pgxpool.Pool, publisher port.EventPublisher) presentation.Services {
	loc := cfg.Location()
	deps := usecase.Dependencies{
		Beneficiaries: pgrepo.NewBeneficiaryRepo(pool, loc),
		Contracts:     pgrepo.NewContractRepo(pool, loc),
		Installments:  pgrepo.NewInstallmentRepo(pool, loc),
		Publisher:     publisher,
		Reports:       export.NewXLSXPaymentWriter(),
		Clock:         adapter.NewSystemClock(loc),
		UpcomingLimit: cfg.UpcomingLimit,
	}
	return presentation.Services{
		Beneficiaries: usecase.NewBeneficiaryService(deps),
		Contracts:     usecase.NewContractService(deps),
		Payments:      usecase.NewPaymentService(deps),
	}
}

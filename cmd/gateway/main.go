package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petmate/internal/api"
	"petmate/internal/backend"
	"petmate/internal/config"
	"petmate/internal/domain"
	"petmate/internal/events"
	"petmate/internal/export"
	"petmate/internal/logging"
	"petmate/internal/metrics"
	"petmate/internal/repository"
	"petmate/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.App.Timezone, err)
	}

	if !cfg.Gateway.Enabled {
		logger.Warn().Msg("gateway is disabled in config, but starting gateway application. Check your config.")
	}

	redisClient := initRedis(cfg, logger)
	if redisClient != nil {
		defer (func() { _ = repository.Close(redisClient) })()
	}
	sessionRepo := initSessionRepository(cfg, redisClient, logger)

	bus := events.NewEventBus()
	client := backend.NewClient(cfg.Backend, logging.Component(logger, "backend"))

	reservations := service.NewReservationService(client, bus, loc, logging.Component(logger, "reservations"))
	dashboard := service.NewDashboard(reservations, bus, loc, cfg.Dashboard.SnapshotTTL, logging.Component(logger, "dashboard"))
	defer dashboard.Close()

	svc := api.Services{
		Reservations: reservations,
		Dashboard:    dashboard,
		Reviews:      service.NewReviewService(client, bus, cfg.Reviews.PageSize, logging.Component(logger, "reviews")),
		Pets:         service.NewPetService(client, bus, logging.Component(logger, "pets")),
		Payments:     service.NewPaymentService(client, logging.Component(logger, "payments")),
		Sessions:     service.NewSessionService(sessionRepo, bus, logging.Component(logger, "sessions")),
		Exporter:     export.NewExporter(logging.Component(logger, "export")),
	}
	server := api.NewServer(cfg.Gateway, svc, loc, cfg.Backend.BaseURL, logging.Component(logger, "gateway"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, logger)

	return serve(ctx, server, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logging.Component(baseLogger, "gateway-main"), closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing with in-memory sessions")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

func initSessionRepository(cfg *config.Config, client *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	memory := repository.NewMemorySessionRepository(cfg.Session.TTL)
	if client == nil {
		return memory
	}
	primary := repository.NewRedisSessionRepository(client, cfg.Session.TTL)
	return repository.NewFailoverSessionRepository(primary, memory, logging.Component(logger, "sessions"))
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func serve(ctx context.Context, server *api.Server, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("gateway stopped")
		}
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway shutdown")
	}

	logger.Info().Msg("gateway stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rishov2004/Blood-Donation/internal/donor"
	"github.com/Rishov2004/Blood-Donation/internal/donor/metrics"
	"github.com/Rishov2004/Blood-Donation/internal/donor/service"
	"github.com/Rishov2004/Blood-Donation/internal/donor/store"
	"github.com/Rishov2004/Blood-Donation/internal/donor/store/cache"
	"github.com/Rishov2004/Blood-Donation/internal/platform/config"
	"github.com/Rishov2004/Blood-Donation/internal/platform/httpserver"
	"github.com/Rishov2004/Blood-Donation/internal/platform/postgres"
	platformredis "github.com/Rishov2004/Blood-Donation/internal/platform/redis"
	httptransport "github.com/Rishov2004/Blood-Donation/internal/transport/http"
	audit "github.com/Rishov2004/Blood-Donation/pkg/platform/audit"
	auditkafka "github.com/Rishov2004/Blood-Donation/pkg/platform/audit/store/kafka"
	auditmemory "github.com/Rishov2004/Blood-Donation/pkg/platform/audit/store/memory"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/audit/publisher"
)

// main wires dependencies, exposes the HTTP router, and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	healthChecks := map[string]httptransport.HealthCheck{
		"postgres": db.PingContext,
	}

	svcOpts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(metrics.New()),
		service.WithDefaultRadius(cfg.Search.RadiusKm),
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthChecks["redis"] = redisClient.Health
		svcOpts = append(svcOpts, service.WithGroupCache(
			cache.New(redisClient.Client, cache.WithTTL(cfg.Redis.CacheTTL))))
		logger.Info("group cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	var auditStore audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaStore, err := auditkafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			logger.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
		logger.Info("audit sink enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	} else {
		auditStore = auditmemory.NewInMemoryStore()
	}

	auditPublisher := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(256))
	defer auditPublisher.Close()
	svcOpts = append(svcOpts, service.WithAuditPublisher(auditPublisher))

	svc := donor.NewService(store.NewPostgres(db), svcOpts...)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:       logger,
		Donors:       donor.NewHandler(svc, logger),
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		logger.Info("starting donor registry", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

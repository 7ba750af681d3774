package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"phishshield/internal/platform/config"
	"phishshield/internal/platform/httpserver"
	"phishshield/internal/platform/logger"
	"phishshield/internal/platform/postgres"
	redisclient "phishshield/internal/platform/redis"
	ratelimitmetrics "phishshield/internal/ratelimit/metrics"
	ratelimit "phishshield/internal/ratelimit/middleware"
	"phishshield/internal/ratelimit/store/bucket"
	httptransport "phishshield/internal/transport/http"
	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/handler"
	"phishshield/internal/urlrisk/metrics"
	"phishshield/internal/urlrisk/publisher"
	"phishshield/internal/urlrisk/registry"
	"phishshield/internal/urlrisk/service"
	"phishshield/internal/urlrisk/store/cache"
	"phishshield/internal/urlrisk/store/history"
	"phishshield/pkg/platform/circuit"
)

const bucketSweepInterval = time.Minute

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Scoring lives in internal/urlrisk.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogFormat, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg, err := loadRegistry(cfg.Analysis.RegistryPath)
	if err != nil {
		return err
	}
	log.Info("registry loaded",
		"path", cfg.Analysis.RegistryPath,
		"trusted_domains", len(reg.TrustedDomains()),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New(promRegistry)),
		service.WithBatchLimits(cfg.Analysis.BatchLimit, cfg.Analysis.BatchConcurrency),
	}
	var checks []httptransport.HealthCheck

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		breaker := circuit.New("redis-cache", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second))
		guarded := cache.NewGuarded(cache.NewRedis(rdb.Client), breaker, log)
		opts = append(opts, service.WithCache(guarded, cfg.Analysis.CacheTTL))
		checks = append(checks, httptransport.HealthCheck{Name: "redis", Check: rdb.Health})
		log.Info("assessment cache backed by redis")
	} else {
		opts = append(opts, service.WithCache(cache.NewInMemoryCache(cache.DefaultMaxEntries), cfg.Analysis.CacheTTL))
	}

	db, err := postgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		opts = append(opts, service.WithHistory(history.NewPostgres(db.Pool)))
		checks = append(checks, httptransport.HealthCheck{Name: "postgres", Check: db.Health})
		log.Info("analysis history backed by postgres")
	} else {
		opts = append(opts, service.WithHistory(history.NewInMemoryStore(cfg.Analysis.HistoryLimit)))
	}

	pub, err := publisher.NewKafka(ctx, cfg.Kafka)
	if err != nil {
		return err
	}
	if pub != nil {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := pub.Close(closeCtx); err != nil {
				log.Error("kafka publisher close failed", "error", err)
			}
		}()
		opts = append(opts, service.WithPublisher(pub, cfg.Analysis.AlertThreshold))
		checks = append(checks, httptransport.HealthCheck{Name: "kafka", Check: pub.Health})
		log.Info("high-risk alerts published to kafka", "topic", cfg.Kafka.Topic)
	}

	svc := service.New(urlrisk.New(reg), opts...)

	limiterMetrics := ratelimitmetrics.New(promRegistry)
	buckets := bucket.NewInMemoryBucketStore()
	limiter := ratelimit.New(buckets, cfg.Security.RateLimitPerMinute, log,
		ratelimit.WithDeniedHook(limiterMetrics.IncrementThrottled),
	)
	go sweepBuckets(ctx, buckets, limiterMetrics)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Analysis:    handler.New(svc, log),
		Logger:      log,
		Gatherer:    promRegistry,
		RateLimiter: limiter,
		AdminToken:  cfg.Security.AdminToken,
		Health:      checks,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting phishshield", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(path)
}

func sweepBuckets(ctx context.Context, store *bucket.InMemoryBucketStore, m *ratelimitmetrics.Metrics) {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SetSwept(store.Sweep())
		}
	}
}

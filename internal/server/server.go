// Package server boots every subsystem and runs the HTTP and gRPC
// servers until the process receives an interrupt.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ordena/ordena/app/jobs"
	"github.com/ordena/ordena/app/realtime"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/config"
	"github.com/ordena/ordena/internal/kernel"
	"github.com/ordena/ordena/pkg/cache"
	"github.com/ordena/ordena/pkg/container"
	"github.com/ordena/ordena/pkg/database"
	grpcserver "github.com/ordena/ordena/pkg/grpc"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/notification"
	"github.com/ordena/ordena/pkg/orm"
	"github.com/ordena/ordena/pkg/queue"
	"github.com/ordena/ordena/pkg/schedule"
	"github.com/ordena/ordena/pkg/storage"
	"github.com/ordena/ordena/pkg/workerpool"
)

const (
	queueWorkers    = 4
	feedPoolSize    = 16
	shutdownTimeout = 10 * time.Second
	stalePendingAge = 24 * time.Hour
)

// redisCacher adapts pkg/cache to the orm.Cacher hook.
type redisCacher struct{}

func (redisCacher) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (redisCacher) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}

// Start boots config, storage, database, cache, queue, scheduler and the
// realtime feed, then serves HTTP and gRPC until interrupted.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogSink := setupMongoLogSink()
	defer closeLogSink()

	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK", ""))

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching and redis-backed carts disabled", "error", err)
	} else {
		orm.CacheStore = redisCacher{}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	storage.Connect()

	container.Singleton("cart.store", func() interface{} { return services.NewCartStore() })
	cartStore := container.Make("cart.store").(services.CartStore)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs.RegisterJobs()
	queue.StartWorkers(ctx, queueWorkers)

	feedPool := workerpool.New(feedPoolSize)
	defer feedPool.Shutdown()
	realtime.Start(feedPool)

	RegisterSchedules()
	schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	httpKernel := kernel.NewHTTPKernel(cartStore)
	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// RegisterSchedules wires the recurring maintenance tasks. Called from
// Start and from the standalone schedule:run command.
func RegisterSchedules() {
	orders := repositories.NewOrderRepository()

	schedule.Hourly().
		Name("orders.stale_pending_sweep").
		WithoutOverlapping().
		Run(func() {
			count, err := orders.CountPendingOlderThan(time.Now().Add(-stalePendingAge))
			if err != nil {
				logger.Error("stale order sweep failed", "error", err)
				return
			}
			if count > 0 {
				logger.Warn("orders stuck in pending", "count", count, "older_than", stalePendingAge.String())
			}
		})
}

// setupMongoLogSink fans log records out to MongoDB when a sink is
// configured. Returns a closer that flushes on shutdown.
func setupMongoLogSink() func() {
	uri := config.MongoLogURI()
	if uri == "" {
		return func() {}
	}

	mongoHandler, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
	if err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
		return func() {}
	}

	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mongoHandler))
	slog.SetDefault(logger.L)
	return mongoHandler.Close
}

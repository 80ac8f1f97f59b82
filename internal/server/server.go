// Package server owns the application lifecycle: boot, listen, and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/dressshop/app/jobs"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/internal/kernel"
	"github.com/shashiranjanraj/dressshop/pkg/cache"
	"github.com/shashiranjanraj/dressshop/pkg/database"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/queue"
	"github.com/shashiranjanraj/dressshop/pkg/storage"
	"github.com/shashiranjanraj/dressshop/pkg/workerpool"
)

const (
	queueWorkers    = 4
	uploadPoolSize  = 8
	shutdownTimeout = 15 * time.Second
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background()) //nolint:errcheck

	// Persist log records to the `logs` collection alongside stdout.
	// Closed after server shutdown so buffered records are flushed.
	logSink := logger.NewMongoHandler(logger.L.Handler(), database.Collection("logs"))
	logger.SetHandler(logSink)
	defer logSink.Close()

	// Redis is optional: the cache no-ops and the queue falls back to the
	// in-memory driver when it is unreachable.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	}

	if err := storage.Connect(); err != nil {
		return err
	}

	// Background jobs.
	jobs.Init(repositories.NewProductRepo())
	jobs.RegisterAll()
	queue.UseCollection(database.Collection("failed_jobs"))
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, queueWorkers)

	pool := workerpool.New(uploadPoolSize)
	defer pool.Shutdown()

	_, handler := kernel.Build(kernel.Deps{UploadPool: pool})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/bike-rental-dashboard/internal/api/http"
	"github.com/i474232898/bike-rental-dashboard/internal/config"
	"github.com/i474232898/bike-rental-dashboard/internal/logging"
	"github.com/i474232898/bike-rental-dashboard/internal/metrics"
	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/rental/sources"
	"github.com/i474232898/bike-rental-dashboard/internal/scheduler"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
	"github.com/i474232898/bike-rental-dashboard/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	shutdownTracing, err := telemetry.SetupTracing(cfg.TracingEnabled, os.Stderr)
	if err != nil {
		slog.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	recorder := metrics.NewPrometheusRecorder()

	// The dataset comes from DATASET_URL when set, otherwise from disk.
	var source rental.Source
	if cfg.DatasetURL != "" {
		source = sources.NewHTTPSource(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DatasetURL)
	} else {
		source = sources.NewFileSource(cfg.DatasetPath)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	table, err := rental.LoadFrom(loadCtx, source)
	cancelLoad()
	if err != nil {
		slog.Error("failed to load dataset",
			slog.String("source", source.Name()),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	memStore := store.NewMemoryStore()
	memStore.Put(table)
	recorder.SetDatasetRows(table.Len())
	slog.Info("dataset loaded",
		slog.String("source", source.Name()),
		slog.Int("rows", table.Len()),
		slog.String("checksum", table.Checksum))

	service := rental.NewService(memStore, recorder)

	sched := scheduler.New(source, memStore, cfg.IntegrityInterval, recorder)
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               telemetry.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpapi.RequestContext())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())
	app.Use(httpapi.Metrics(recorder))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": telemetry.ServiceName,
			"rows":    table.Len(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpapi.RegisterRoutes(app, service)

	go func() {
		slog.Info("http server listening", slog.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("error flushing traces", slog.String("error", err.Error()))
	}
}

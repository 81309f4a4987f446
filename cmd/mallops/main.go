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

	"github.com/hibiken/asynq"

	"github.com/mallops/mallops/internal/app"
	"github.com/mallops/mallops/internal/dashboard/export"
	dashboardhttp "github.com/mallops/mallops/internal/dashboard/http"
	"github.com/mallops/mallops/internal/observability"
	"github.com/mallops/mallops/internal/platform/redisx"
	"github.com/mallops/mallops/internal/view"
	"github.com/mallops/mallops/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	build := app.ReadBuildInfo()
	logger.Info("starting mallops",
		slog.String("version", build.Version),
		slog.String("revision", build.Revision),
		slog.String("env", cfg.AppEnv),
		slog.Bool("backend_configured", cfg.BackendConfigured()),
	)

	metrics := observability.NewMetrics()
	data := app.NewDataLayer(cfg, logger, metrics.Registerer(), nil)
	defer data.Close()
	metrics.TrackSourceMode(data.Source.MockActive)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	pdfExporter := &export.PDFExporter{Endpoint: cfg.GotenbergURL, Client: &http.Client{Timeout: 30 * time.Second}}
	dashboardHandler := dashboardhttp.NewHandler(logger, data.Service, data.Source, templates, pdfExporter, dashboardhttp.Config{
		DefaultMallID:  cfg.DefaultMallID,
		RequestTimeout: cfg.AppRequestTimeout,
	})

	readiness := map[string]app.ReadinessCheck{}
	var jobHandler *jobs.Handler
	redisClient, err := redisx.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, job endpoints disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
	}
	if cfg.BackendConfigured() {
		readiness["backend"] = func(context.Context) error {
			if _, ok := data.Source.Client(); !ok {
				return errors.New("backend client unavailable")
			}
			return nil
		}
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
		Readiness:        readiness,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

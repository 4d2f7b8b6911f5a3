package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	specpkg "github.com/daap14/liga/api"
	"github.com/daap14/liga/internal/api"
	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/config"
	"github.com/daap14/liga/internal/database"
	"github.com/daap14/liga/internal/membership"
	"github.com/daap14/liga/internal/season"
	"github.com/daap14/liga/internal/team"
	"github.com/daap14/liga/internal/venue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gw, err := openDatabase(cfg, reg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer gw.Close()

	router := api.NewRouter(api.RouterDeps{
		Health:             gw,
		Version:            cfg.Version,
		VenueRepo:          venue.NewRepository(gw),
		TeamRepo:           team.NewRepository(gw),
		SeasonRepo:         season.NewRepository(gw),
		MembershipRepo:     membership.NewRepository(gw),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		HTTPMetrics:        middleware.NewHTTPMetrics(reg),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		OpenAPISpec:        specpkg.OpenAPISpec,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting liga server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		gw.Close()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		gw.Close()
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func openDatabase(cfg *config.Config, reg prometheus.Registerer) (*database.Gateway, error) {
	opts := database.Options{
		URL:               cfg.DatabaseURL,
		PoolSize:          cfg.DBPoolSize,
		MaxOverflow:       cfg.DBMaxOverflow,
		OverflowIdle:      cfg.DBOverflowIdle,
		PoolTimeout:       cfg.DBPoolTimeout,
		PoolRecycle:       cfg.DBPoolRecycle,
		PrePing:           cfg.DBPrePing,
		ConnectTimeout:    cfg.DBConnectTimeout,
		KeepAlive:         cfg.DBKeepAlive,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		StatementTimeout:  cfg.DBStatementTimeout,
		RetryAttempts:     cfg.DBRetryAttempts,
		RetryInitial:      cfg.DBRetryInitial,
		RetryMax:          cfg.DBRetryMax,
		TraceSQL:          cfg.DBTraceSQL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gw, err := database.Open(ctx, opts, database.NewMetrics(reg), slog.Default())
	if err != nil {
		return nil, err
	}
	if err := gw.RegisterPoolStats(reg); err != nil {
		gw.Close()
		return nil, fmt.Errorf("registering pool metrics: %w", err)
	}
	return gw, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usercrud/internal/config"
	"usercrud/internal/handlers"
	"usercrud/internal/logger"
	"usercrud/internal/metrics"
	"usercrud/internal/repository"
	"usercrud/internal/repository/db"
	"usercrud/internal/server"
	"usercrud/internal/service"
	"usercrud/internal/views"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// @title        usercrud
// @version      1.0
// @description  Server-rendered CRUD over a single users table.
// @BasePath     /
func main() {
	// load configs/config.yml, env and flags
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.New(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	conn, err := db.InitDB(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "driver", cfg.DBDriver, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	tmpl, err := views.Load()
	if err != nil {
		log.Fatalw("failed to load templates", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos)

	if cfg.WSInterval > handlers.MaxWSInterval {
		log.Warnw("ws.interval above maximum, clamping", "interval", cfg.WSInterval, "max", handlers.MaxWSInterval)
	}
	opts := []handlers.Option{
		handlers.WithSwagger(cfg.SwaggerEnabled),
		handlers.WithWSInterval(cfg.WSInterval),
	}
	if cfg.MetricsEnabled {
		m, shutdownMetrics, err := setupMetrics()
		if err != nil {
			log.Fatalw("failed to set up metrics", "err", err)
		}
		defer func() { _ = shutdownMetrics(context.Background()) }()
		opts = append(opts, handlers.WithMetrics(m, promhttp.Handler()))
	}
	apiHandler := handlers.NewHandler(services, tmpl, log, opts...)

	srv := server.New(server.Timeouts{
		ReadHeader: cfg.ReadHeaderTimeout,
		Write:      cfg.WriteTimeout,
		Idle:       cfg.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, cfg.ShutdownTimeout, log)
}

// setupMetrics installs an OTel meter provider exporting to the Prometheus
// default registry, which promhttp.Handler serves.
func setupMetrics() (*metrics.Metrics, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	m, err := metrics.NewMetrics(provider.Meter(metrics.MeterName))
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, err
	}
	return m, provider.Shutdown, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/health"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/openkcm/common-sdk/pkg/status"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	slogctx "github.com/veqryn/slog-context"

	root "github.com/oraesatta/cheoresono"
	"github.com/oraesatta/cheoresono/internal/clock"
	"github.com/oraesatta/cheoresono/internal/config"
	"github.com/oraesatta/cheoresono/internal/handler"
	"github.com/oraesatta/cheoresono/internal/middleware"
	"github.com/oraesatta/cheoresono/internal/service"
)

func main() {
	ctx := context.Background()

	cfg := loadConfig()
	err := cfg.Validate()
	handleErr("validating config", err)

	initLogger(cfg)

	initOTLP(ctx, cfg)

	// Status server initialization
	go startStatusServer(cfg, ctx)

	warnIfZoneUnresolvable(ctx, cfg)

	meters, err := service.InitMeters(ctx, &cfg.Application, clock.SystemClock{}, clock.SystemZoneDB{}, cfg.Time.Zone)
	handleErr("initializing meters", err)

	wallClock := service.NewWallClock(cfg.Time.Zone, clock.SystemClock{}, clock.SystemZoneDB{}, meters)

	httpServer, err := setupHTTPServer(ctx, cfg, wallClock)
	handleErr("initializing HTTP server", err)

	startHTTPServer(ctx, cfg, httpServer)
}

func startHTTPServer(ctx context.Context, cfg *config.Config, httpServer *http.Server) {
	var lc net.ListenConfig

	lis, err := lc.Listen(ctx, "tcp", cfg.HTTPServer.Address)

	handleErr("starting server", err)
	slogctx.Info(ctx, "HTTP server is listening", "address", cfg.HTTPServer.Address)

	// Handle server shutdown gracefully when the process is terminated.
	// Serve returns as soon as Shutdown starts, so the channel keeps the
	// process alive until in-flight requests have drained.
	idleConnsClosed := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		if err != nil {
			slogctx.Error(ctx, "HTTP server shutdown failed", "error", err)
		}

		slogctx.Info(ctx, "HTTP server is stopped")
		close(idleConnsClosed)
	}()

	err = httpServer.Serve(lis)
	if !errors.Is(err, http.ErrServerClosed) {
		handleErr("listening to HTTP requests", err)
	}

	<-idleConnsClosed
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, wallClock *service.WallClock) (*http.Server, error) {
	rec := middleware.NewRecover()

	meter := otel.Meter(
		cfg.Application.Name,
		metric.WithInstrumentationVersion(otel.Version()),
		metric.WithInstrumentationAttributes(otlp.CreateAttributesFrom(cfg.Application)...),
	)

	met, err := middleware.InitMeters(ctx, &cfg.Application, meter)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+handler.PathCheOreSono, handler.CurrentTime(wallClock))

	httpServer := &http.Server{
		Handler:           middleware.RequestID(met.Middleware(rec.Middleware(mux))),
		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
	}

	return httpServer, nil
}

// warnIfZoneUnresolvable checks the configured zone once at startup. A miss
// is not fatal: every request resolves the zone again, so installing tzdata
// on the host heals the service without a restart.
func warnIfZoneUnresolvable(ctx context.Context, cfg *config.Config) {
	_, err := clock.SystemZoneDB{}.Load(cfg.Time.Zone.String())
	if err != nil {
		slogctx.Warn(ctx, "configured timezone is not resolvable, requests will be answered with 500 until the host provides IANA data",
			"zone", cfg.Time.Zone.String(), "error", err)
	}
}

func initOTLP(ctx context.Context, cfg *config.Config) {
	err := otlp.Init(ctx, &cfg.Application, &cfg.Telemetry, &cfg.Logger, otlp.WithLogger(slog.Default()))
	handleErr("starting OpenTelemetry", err)
}

func initLogger(cfg *config.Config) {
	err := logger.InitAsDefault(cfg.Logger, cfg.Application)
	handleErr("initializing logger", err)
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error %s: %v", msg, err)
	}
}

func loadConfig() *config.Config {
	cfg := &config.Config{}
	loader := commoncfg.NewLoader(cfg,
		commoncfg.WithPaths(
			"/etc/cheoresono",
			"."),
		commoncfg.WithEnvOverride(""))
	err := loader.LoadConfig()
	handleErr("loading config", err)

	err = commoncfg.UpdateConfigVersion(&cfg.BaseConfig, root.BuildVersion)
	handleErr("loading build version into config", err)

	return cfg
}

func startStatusServer(cfg *config.Config, ctx context.Context) {
	liveness := status.WithLiveness(
		health.NewHandler(
			health.NewChecker(health.WithDisabledAutostart()),
		),
	)

	healthOptions := make([]health.Option, 0)
	healthOptions = append(healthOptions,
		health.WithDisabledAutostart(),
		health.WithStatusListener(func(ctx context.Context, state health.State) {
			slogctx.Info(ctx, "readiness status changed", "status", state.Status, "checkStates", state.CheckState)
		}),
	)

	readiness := status.WithReadiness(
		health.NewHandler(
			health.NewChecker(healthOptions...),
		),
	)

	// Start the status server
	err := status.Start(ctx, &cfg.BaseConfig, liveness, readiness)
	if err != nil {
		slogctx.Error(ctx, "Failure on the status server", "error", err)

		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	}
}

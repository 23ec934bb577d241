// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server, and handles graceful shutdown
// on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/edulab/projhub/internal/adapters/http"
	"github.com/edulab/projhub/internal/adapters/http/handlers"
	"github.com/edulab/projhub/internal/adapters/http/middleware"

	"github.com/edulab/projhub/internal/adapters/directory"
	"github.com/edulab/projhub/internal/adapters/session"
	"github.com/edulab/projhub/internal/app"
	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/platform/config"
	"github.com/edulab/projhub/internal/platform/health"
	"github.com/edulab/projhub/internal/platform/logging"
	"github.com/edulab/projhub/internal/platform/telemetry"
	"github.com/edulab/projhub/internal/ports"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second

	// defaultFormationWindow is applied when store.formation_deadline is
	// unset: teams form freely for 30 days after startup.
	defaultFormationWindow = 30 * 24 * time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*directory.Directory](injector))
	registry.Register(do.MustInvoke[*session.FileStore](injector))

	// Count committed store mutations while the server runs.
	hub := do.MustInvoke[*events.Hub](injector)
	stopCounting := countStoreOperations(hub, otel.metrics)
	defer stopCounting()

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// countStoreOperations subscribes to the event hub and increments the
// store-operation counter for every committed mutation. The returned stop
// function unsubscribes and waits for the consumer to drain.
func countStoreOperations(hub *events.Hub, metrics *telemetry.Metrics) func() {
	if metrics == nil {
		return func() {}
	}

	const subscriberID = "metrics"
	ch := hub.Subscribe(subscriberID)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for e := range ch {
			metrics.StoreOperationTotal.Add(context.Background(), 1,
				metric.WithAttributes(telemetry.AttrOperation.String(string(e.Kind))))
		}
	}()

	return func() {
		hub.Unsubscribe(subscriberID)
		<-done
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	var seed seedData
	if cfg.Store.Seed {
		seed = newSeedData(time.Now())
	}

	formationDeadline := cfg.Store.ParsedFormationDeadline()
	if formationDeadline.IsZero() {
		formationDeadline = time.Now().Add(defaultFormationWindow)
	}

	do.Provide(injector, func(_ do.Injector) (*events.Hub, error) {
		return events.NewHub(), nil
	})

	do.Provide(injector, func(_ do.Injector) (*directory.Directory, error) {
		return directory.New(seed.users, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.UserDirectory, error) {
		return do.MustInvoke[*directory.Directory](i), nil
	})

	do.Provide(injector, func(_ do.Injector) (*session.FileStore, error) {
		return session.NewFileStore(cfg.Session.Dir, logger)
	})

	do.Provide(injector, func(i do.Injector) (ports.SessionStore, error) {
		return do.MustInvoke[*session.FileStore](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TeamService, error) {
		dir := do.MustInvoke[ports.UserDirectory](i)
		hub := do.MustInvoke[*events.Hub](i)
		return app.NewTeamService(app.TeamServiceConfig{
			Latency:           cfg.Store.Latency,
			FormationDeadline: formationDeadline,
			Initial:           seed.teams,
		}, dir, hub, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProjectService, error) {
		hub := do.MustInvoke[*events.Hub](i)
		return app.NewProjectService(app.ProjectServiceConfig{
			Latency: cfg.Store.Latency,
			Initial: seed.projects,
		}, hub, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ReviewService, error) {
		teams := do.MustInvoke[ports.TeamService](i)
		projects := do.MustInvoke[ports.ProjectService](i)
		return app.NewReviewService(teams, projects, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AuthService, error) {
		dir := do.MustInvoke[ports.UserDirectory](i)
		store := do.MustInvoke[ports.SessionStore](i)
		return app.NewAuthService(app.AuthServiceConfig{
			Latency: cfg.Store.Latency,
		}, dir, store, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.AuthHandler, error) {
		return handlers.NewAuthHandler(do.MustInvoke[ports.AuthService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TeamHandler, error) {
		return handlers.NewTeamHandler(do.MustInvoke[ports.TeamService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		return handlers.NewProjectHandler(do.MustInvoke[ports.ProjectService](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.MentorHandler, error) {
		teams := do.MustInvoke[ports.TeamService](i)
		reviews := do.MustInvoke[ports.ReviewService](i)
		return handlers.NewMentorHandler(teams, reviews), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.UserHandler, error) {
		return handlers.NewUserHandler(do.MustInvoke[ports.UserDirectory](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.EventsHandler, error) {
		hub := do.MustInvoke[*events.Hub](i)
		return handlers.NewEventsHandler(hub, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		authH := do.MustInvoke[*handlers.AuthHandler](i)
		teamH := do.MustInvoke[*handlers.TeamHandler](i)
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		mentorH := do.MustInvoke[*handlers.MentorHandler](i)
		userH := do.MustInvoke[*handlers.UserHandler](i)
		eventsH := do.MustInvoke[*handlers.EventsHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(authH, teamH, projH, mentorH, userH, eventsH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

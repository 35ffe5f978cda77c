// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/chefaid/chefaid/internal/application/kitchen"
	settingsapp "github.com/chefaid/chefaid/internal/application/settings"
	"github.com/chefaid/chefaid/internal/infrastructure/ai/gemini"
	"github.com/chefaid/chefaid/internal/infrastructure/ai/googlegenai"
	"github.com/chefaid/chefaid/internal/infrastructure/config"
	"github.com/chefaid/chefaid/internal/infrastructure/export"
	"github.com/chefaid/chefaid/internal/infrastructure/http/middleware"
	"github.com/chefaid/chefaid/internal/infrastructure/http/server"
	"github.com/chefaid/chefaid/internal/infrastructure/monitoring"
	"github.com/chefaid/chefaid/internal/infrastructure/security"
	"github.com/chefaid/chefaid/internal/ports/inbound"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	"github.com/chefaid/chefaid/pkg/healthcheck"
	"github.com/chefaid/chefaid/pkg/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Core provides everything the screens need except the HTTP surface. The
// CLI runs one-shot commands on it.
func Core(configPath string) fx.Option {
	return fx.Options(
		ConfigModule(configPath),
		LoggerModule,
		ObservabilityModule,
		StorageModule,
		GeneratorModule,
		ServiceModule,
		HealthModule,
	)
}

// Server provides the full HTTP application
func Server(configPath string) fx.Option {
	return fx.Options(
		Core(configPath),
		HTTPModule,
		LifecycleModule,
	)
}

// ConfigModule provides configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(func() (*config.Config, error) {
		return config.Load(configPath)
	})
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutput,
		})
	},
)

// ObservabilityModule provides metrics and tracing
var ObservabilityModule = fx.Provide(
	monitoring.NewMetricsCollector,
	newTracingProvider,
	func(tp *monitoring.TracingProvider) trace.Tracer {
		return tp.Tracer()
	},
)

func newTracingProvider(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
	tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
		ServiceName:    "chefaid",
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		Insecure:       cfg.Monitoring.OTLPInsecure,
		SamplingRate:   cfg.Monitoring.SamplingRate,
		Enabled:        cfg.Monitoring.EnableTracing,
	}, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})
	return tp, nil
}

// StorageModule provides the settings store selected by storage.driver
var StorageModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*Storage, error) {
		storage, err := OpenStorage(cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return storage.Close()
			},
		})
		return storage, nil
	},
	func(s *Storage) outbound.KeyValueStore {
		return s.Store
	},
)

// GeneratorModule provides the oracle client selected by ai.provider
var GeneratorModule = fx.Provide(
	NewGenerator,
)

// NewGenerator builds the text generator for cfg
func NewGenerator(cfg *config.Config, log *zap.Logger) (outbound.TextGenerator, error) {
	switch cfg.AI.Provider {
	case config.ProviderREST, "":
		return gemini.NewClient(gemini.Config{
			BaseURL:         cfg.AI.BaseURL,
			Model:           cfg.AI.Model,
			Timeout:         cfg.AI.Timeout,
			Temperature:     cfg.AI.Temperature,
			MaxOutputTokens: cfg.AI.MaxOutputTokens,
		}, log), nil
	case config.ProviderGenAI:
		return googlegenai.NewClient(googlegenai.Config{
			BaseURL:         cfg.AI.BaseURL,
			Model:           cfg.AI.Model,
			Timeout:         cfg.AI.Timeout,
			Temperature:     float32(cfg.AI.Temperature),
			MaxOutputTokens: int32(cfg.AI.MaxOutputTokens),
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	security.NewValidationService,
	func(store outbound.KeyValueStore, v *security.ValidationService, m *monitoring.MetricsCollector, log *zap.Logger) *settingsapp.Service {
		return settingsapp.NewService(store, v, m, log)
	},
	func(s *settingsapp.Service) inbound.SettingsService { return s },
	newKitchenService,
	func(s *kitchen.Service) inbound.KitchenService { return s },
)

type kitchenParams struct {
	fx.In

	Config    *config.Config
	Settings  *settingsapp.Service
	Generator outbound.TextGenerator
	Validator *security.ValidationService
	Metrics   *monitoring.MetricsCollector
	Tracer    trace.Tracer
	Logger    *zap.Logger
}

func newKitchenService(p kitchenParams) *kitchen.Service {
	var opts []kitchen.Option
	if p.Config.Export.Enabled {
		opts = append(opts, kitchen.WithCalendarSink(export.NewFileSink(p.Config.Export.Directory, p.Logger)))
	}
	return kitchen.NewService(p.Settings, p.Generator, p.Validator, p.Metrics, p.Tracer, p.Logger, opts...)
}

// HealthModule provides health checks for the selected backends
var HealthModule = fx.Provide(
	func(cfg *config.Config, storage *Storage, settings inbound.SettingsService, log *zap.Logger) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log.Named("health"))
		health.SetCacheTTL(cfg.Monitoring.HealthCacheTTL)
		for name, checker := range storage.Checkers {
			health.Register(name, checker)
		}
		health.Register("settings", SettingsChecker(settings))
		if cfg.Export.Enabled {
			health.Register("export_directory", healthcheck.NewDirectoryChecker("export_directory", cfg.Export.Directory))
		}
		return health
	},
)

// SettingsChecker reads the settings through the service. A missing API key
// is reported in the message only; the server still serves /options and
// /render without one.
func SettingsChecker(settings inbound.SettingsService) healthcheck.Checker {
	return healthcheck.NewCustomChecker("settings", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		s, err := settings.Load(ctx)
		if err != nil {
			return healthcheck.StatusUnhealthy, err.Error(), nil
		}
		message := "API key configured"
		if !s.HasAPIKey() {
			message = "API key not configured"
		}
		return healthcheck.StatusHealthy, message, map[string]interface{}{
			"has_api_key": s.HasAPIKey(),
			"num_people":  s.NumPeople,
		}
	})
}

// HTTPModule provides HTTP server and middleware
var HTTPModule = fx.Provide(
	func(cfg *config.Config, tracer trace.Tracer, metrics *monitoring.MetricsCollector, log *zap.Logger) *middleware.Middleware {
		return middleware.New(cfg, tracer, metrics, log)
	},
	newServer,
)

type serverParams struct {
	fx.In

	Config     *config.Config
	Middleware *middleware.Middleware
	Metrics    *monitoring.MetricsCollector
	Health     *healthcheck.HealthCheck
	Validation *security.ValidationService
	Kitchen    inbound.KitchenService
	Settings   inbound.SettingsService
	Logger     *zap.Logger
}

func newServer(p serverParams) (*server.Server, error) {
	return server.NewServer(p.Config, server.Dependencies{
		Middleware: p.Middleware,
		Metrics:    p.Metrics,
		Health:     p.Health,
		Validation: p.Validation,
		Kitchen:    p.Kitchen,
		Settings:   p.Settings,
	}, p.Logger)
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Chef Aid",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("storage", cfg.Storage.Driver),
				zap.String("ai_provider", cfg.AI.Provider),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Chef Aid")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}

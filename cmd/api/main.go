package main

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/config"
	"github.com/pageza/alchemorsel-crafter/internal/api"
	"github.com/pageza/alchemorsel-crafter/internal/journal"
	"github.com/pageza/alchemorsel-crafter/internal/logger"
	"github.com/pageza/alchemorsel-crafter/internal/metrics"
	"github.com/pageza/alchemorsel-crafter/internal/router"
	"github.com/pageza/alchemorsel-crafter/internal/server"
	"github.com/pageza/alchemorsel-crafter/internal/service"
)

func main() {
	// Variables from .env never override the real environment.
	if err := config.LoadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	fx.New(appOptions()...).Run()
}

func appOptions() []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Configuration
		fx.Provide(config.LoadConfig),

		// Logger
		fx.Provide(newLogger),

		// Observability
		fx.Provide(newMetrics),

		// Text generation and journal
		fx.Provide(service.NewGenerator),
		fx.Provide(newJournal),

		// Services
		fx.Provide(service.NewFormService),
		fx.Provide(newRecipeService),

		// Handlers
		fx.Provide(
			func(s *service.FormService) *api.FormHandler { return api.NewFormHandler(s) },
			func(s *service.RecipeService, log *zap.Logger) *api.RecipeHandler { return api.NewRecipeHandler(s, log) },
			api.NewGenerationsHandler,
			func(cfg *config.Config, rec journal.Recorder) *api.HealthHandler {
				return api.NewHealthHandler(cfg.LLMProvider, rec)
			},
		),

		// HTTP
		fx.Provide(newRouter),
		fx.Provide(server.New),

		// Lifecycle
		fx.Invoke(warnMissingAPIKey),
		fx.Invoke(registerLifecycleHooks),
	}
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
	return l, nil
}

// newMetrics returns nil when metrics are disabled
func newMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.MetricsEnabled {
		return nil
	}
	return metrics.New()
}

func newJournal(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (journal.Recorder, error) {
	rec, err := journal.New(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rec.Close()
		},
	})
	return rec, nil
}

func newRecipeService(cfg *config.Config, gen service.Generator, rec journal.Recorder, m *metrics.Metrics, log *zap.Logger) *service.RecipeService {
	return service.NewRecipeService(gen, rec, m, log, cfg.StrictOptions)
}

func newRouter(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	form *api.FormHandler,
	recipe *api.RecipeHandler,
	generations *api.GenerationsHandler,
	health *api.HealthHandler,
) (*gin.Engine, error) {
	return router.SetupRouter(cfg, log, m, router.Handlers{
		Form:        form,
		Recipe:      recipe,
		Generations: generations,
		Health:      health,
	})
}

func warnMissingAPIKey(cfg *config.Config, log *zap.Logger) {
	if cfg.APIKey() == "" {
		log.Warn("No API key configured, recipe generation will fail until one is set",
			zap.String("provider", cfg.LLMProvider))
	}
}

func registerLifecycleHooks(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting recipe crafter",
				zap.String("environment", string(cfg.Environment)),
				zap.String("provider", cfg.LLMProvider),
				zap.String("journal", cfg.JournalDriver),
				zap.Bool("strict_options", cfg.StrictOptions),
			)
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Stop(stopCtx)
		},
	})
}

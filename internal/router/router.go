package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/config"
	"github.com/pageza/alchemorsel-crafter/internal/api"
	"github.com/pageza/alchemorsel-crafter/internal/metrics"
	"github.com/pageza/alchemorsel-crafter/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	Form        *api.FormHandler
	Recipe      *api.RecipeHandler
	Generations *api.GenerationsHandler
	Health      *api.HealthHandler
}

// SetupRouter configures the application routes. m may be nil when metrics are disabled.
func SetupRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, h Handlers) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	templates, err := api.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	// CORS middleware
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	// Form routes
	router.GET("/", h.Form.Index)
	router.POST("/generate_recipe", h.Recipe.GenerateRecipe)

	// Operational routes
	router.GET("/health", h.Health.Health)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1 routes
	if cfg.JournalEnabled() && h.Generations != nil {
		v1 := router.Group("/api/v1")
		h.Generations.RegisterRoutes(v1)
	}

	return router, nil
}

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/config"
	"github.com/pageza/alchemorsel-crafter/internal/api"
	"github.com/pageza/alchemorsel-crafter/internal/journal"
	"github.com/pageza/alchemorsel-crafter/internal/metrics"
	"github.com/pageza/alchemorsel-crafter/internal/middleware"
	"github.com/pageza/alchemorsel-crafter/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticGenerator struct{}

func (staticGenerator) Generate(context.Context, string) (string, error) {
	return "<h1>Static</h1>", nil
}

func (staticGenerator) Name() string { return "static" }

func setup(t *testing.T, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	rec := journal.Nop{}

	r, err := SetupRouter(cfg, log, m, Handlers{
		Form:        api.NewFormHandler(service.NewFormService()),
		Recipe:      api.NewRecipeHandler(service.NewRecipeService(staticGenerator{}, rec, m, log, false), log),
		Generations: api.NewGenerationsHandler(rec, log),
		Health:      api.NewHealthHandler("static", rec),
	})
	require.NoError(t, err)
	return r
}

func TestRoutes(t *testing.T) {
	r := setup(t, &config.Config{Environment: config.Test}, metrics.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	form := url.Values{"ingredient": {"a", "b", "c"}, "language": {"English"}}
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate_recipe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Static</h1>")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `crafter_recipe_generations_total{outcome="success",provider="static"} 1`)
	assert.Contains(t, w.Body.String(), `crafter_http_requests_total{method="POST",route="/generate_recipe",status="200"} 1`)

	// Journal routes are only mounted when a journal is configured.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutesWithoutMetrics(t *testing.T) {
	r := setup(t, &config.Config{Environment: config.Test}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalRoutes(t *testing.T) {
	r := setup(t, &config.Config{Environment: config.Test, JournalDriver: config.JournalSQLite}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"generations":[],"count":0}`, w.Body.String())
}

func TestCORSOnlyForConfiguredOrigins(t *testing.T) {
	r := setup(t, &config.Config{Environment: config.Test, AllowedOrigins: []string{"http://localhost:5173"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

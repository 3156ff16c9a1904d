package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/config"
	"github.com/pageza/alchemorsel-crafter/internal/api"
	"github.com/pageza/alchemorsel-crafter/internal/journal"
	"github.com/pageza/alchemorsel-crafter/internal/metrics"
	"github.com/pageza/alchemorsel-crafter/internal/models"
	"github.com/pageza/alchemorsel-crafter/internal/router"
	"github.com/pageza/alchemorsel-crafter/internal/service"
)

// fakeGemini answers generateContent calls with reply, or with a 400 error
// body when the key is "bad-key"
func fakeGemini(t *testing.T, reply string) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") == "bad-key" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
			return
		}

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompts = append(prompts, body.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]string{{"text": reply}}},
			}},
		})
	}))
	t.Cleanup(server.Close)

	return server, &prompts
}

func setupApp(t *testing.T, apiKey, apiURL string) (*gin.Engine, journal.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:       config.Test,
		LLMProvider:       config.ProviderGemini,
		LLMTimeout:        5 * time.Second,
		GeminiAPIKey:      apiKey,
		GeminiModel:       "gemini-1.5-flash",
		GeminiAPIURL:      apiURL,
		JournalDriver:     config.JournalSQLite,
		JournalDSN:        filepath.Join(t.TempDir(), "journal.db"),
		JournalMaxEntries: 100,
	}
	log := zap.NewNop()

	gen, err := service.NewGenerator(cfg)
	require.NoError(t, err)
	rec, err := journal.New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	m := metrics.New()
	r, err := router.SetupRouter(cfg, log, m, router.Handlers{
		Form:        api.NewFormHandler(service.NewFormService()),
		Recipe:      api.NewRecipeHandler(service.NewRecipeService(gen, rec, m, log, cfg.StrictOptions), log),
		Generations: api.NewGenerationsHandler(rec, log),
		Health:      api.NewHealthHandler(cfg.LLMProvider, rec),
	})
	require.NoError(t, err)

	return r, rec
}

func submit(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate_recipe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", "integration-1")
	r.ServeHTTP(w, req)
	return w
}

func TestRecipeGenerationEndToEnd(t *testing.T) {
	gemini, prompts := fakeGemini(t, "<h2>Shakshuka</h2><ul><li>egg</li></ul>")
	r, _ := setupApp(t, "good-key", gemini.URL)

	w := submit(r, url.Values{
		"ingredient":   {"egg", "tomato", "pepper"},
		"cuisine":      {"Mediterranean"},
		"restrictions": {"Halal"},
		"language":     {"English"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>Shakshuka</h2><ul><li>egg</li></ul>")

	require.Len(t, *prompts, 1)
	assert.Equal(t,
		"Craft a recipe in HTML in English using egg, tomato, pepper.\n"+
			"Ensure the recipe ingredients appear at the top, followed by the step-by-step instructions.\n"+
			"The cuisine should be Mediterranean.\n"+
			"The recipe should follow these dietary restrictions: Halal.\n",
		(*prompts)[0])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/generations?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Generations []models.Generation `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Generations, 1)
	entry := resp.Generations[0]
	assert.Equal(t, "integration-1", entry.RequestID)
	assert.Equal(t, models.OutcomeSuccess, entry.Outcome)
	assert.Equal(t, models.JSONBStringArray{"egg", "tomato", "pepper"}, entry.Ingredients)
	assert.Equal(t, models.JSONBStringArray{"Halal"}, entry.Restrictions)
}

func TestRecipeGenerationProviderError(t *testing.T) {
	gemini, prompts := fakeGemini(t, "unused")
	r, rec := setupApp(t, "bad-key", gemini.URL)

	w := submit(r, url.Values{"ingredient": {"a", "b", "c"}, "language": {"French"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error generating recipe: 400 API key not valid. Please pass a valid API key.")
	assert.Empty(t, *prompts)

	entries, err := rec.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.OutcomeError, entries[0].Outcome)
	assert.Equal(t, "400 API key not valid. Please pass a valid API key.", entries[0].Error)
}

func TestMissingKeyKeepsFormAvailable(t *testing.T) {
	r, _ := setupApp(t, "", "http://127.0.0.1:1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = submit(r, url.Values{"ingredient": {"a", "b", "c"}, "language": {"English"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error generating recipe: API key is not configured")
}

func TestValidationSkipsJournal(t *testing.T) {
	gemini, prompts := fakeGemini(t, "unused")
	r, rec := setupApp(t, "good-key", gemini.URL)

	w := submit(r, url.Values{"ingredient": {"a", "b"}, "language": {"English"}})
	assert.Equal(t, "Kindly provide exactly 3 ingredients.", w.Body.String())
	assert.Empty(t, *prompts)

	entries, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

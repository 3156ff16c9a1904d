package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-crafter/config"
)

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"<h1>Soup</h1>"},{"text":"<ol><li>Boil</li></ol>"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL+"/", "gemini-1.5-flash", 5*time.Second)
	text, err := client.Generate(context.Background(), "Craft a recipe")

	require.NoError(t, err)
	assert.Equal(t, "<h1>Soup</h1><ol><li>Boil</li></ol>", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "Craft a recipe", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, config.ProviderGemini, client.Name())
}

func TestGeminiClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error body",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantErr: "400 API key not valid. Please pass a valid API key.",
		},
		{
			name:    "plain error body",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantErr: "502 upstream down",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: "no response from API",
		},
		{
			name:    "blocked prompt",
			status:  http.StatusOK,
			body:    `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantErr: "prompt was blocked: SAFETY",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"candidates":`,
			wantErr: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewGeminiClient("test-key", server.URL, "gemini-1.5-flash", 5*time.Second)
			text, err := client.Generate(context.Background(), "prompt")

			require.Error(t, err)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGeminiClientAPIErrorType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	_, err := NewGeminiClient("k", server.URL, "m", time.Second).Generate(context.Background(), "p")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.Status)
	assert.Equal(t, "429 Resource has been exhausted", err.Error())
}

func TestGeminiClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewGeminiClient("k", server.URL, "m", 50*time.Millisecond)
	_, err := client.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestGeneratorsWithoutKey(t *testing.T) {
	_, err := NewGeminiClient("", "http://unused", "m", time.Second).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewChatClient("", "http://unused", "m", time.Second).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestChatClientGenerate(t *testing.T) {
	var gotAuth string
	var gotBody Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"<p>Omelette</p>"}}]}`))
	}))
	defer server.Close()

	client := NewChatClient("test-key", server.URL, "deepseek-chat", 5*time.Second)
	text, err := client.Generate(context.Background(), "Craft a recipe")

	require.NoError(t, err)
	assert.Equal(t, "<p>Omelette</p>", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "deepseek-chat", gotBody.Model)
	assert.Equal(t, []Message{{Role: "user", Content: "Craft a recipe"}}, gotBody.Messages)
	assert.Equal(t, config.ProviderOpenAI, client.Name())
}

func TestChatClientErrors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Authentication Fails","type":"authentication_error"}}`))
		}))
		defer server.Close()

		_, err := NewChatClient("k", server.URL, "m", time.Second).Generate(context.Background(), "p")
		require.Error(t, err)
		assert.Equal(t, "401 Authentication Fails", err.Error())
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewChatClient("k", server.URL, "m", time.Second).Generate(context.Background(), "p")
		require.Error(t, err)
		assert.Equal(t, "no response from API", err.Error())
	})
}

func TestNewGenerator(t *testing.T) {
	gen, err := NewGenerator(&config.Config{LLMProvider: config.ProviderGemini, GeminiAPIURL: "http://x", GeminiModel: "m", LLMTimeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, gen)

	gen, err = NewGenerator(&config.Config{LLMProvider: config.ProviderOpenAI, OpenAIAPIURL: "http://x", OpenAIModel: "m", LLMTimeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &ChatClient{}, gen)

	gen, err = NewGenerator(&config.Config{LLMProvider: "palm"})
	assert.Error(t, err)
	assert.Nil(t, gen)
}

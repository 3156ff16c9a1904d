package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/alchemorsel-crafter/config"
)

// maxErrorBody caps how much of an unparseable error body ends up in an error message
const maxErrorBody = 512

// GeminiClient calls the generateContent endpoint of the Gemini API
type GeminiClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewGeminiClient creates a client for model under apiURL
// (e.g. https://generativelanguage.googleapis.com/v1beta)
func NewGeminiClient(apiKey, apiURL, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return config.ProviderGemini
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type googleErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt as a single user turn and returns the concatenated
// text parts of the first candidate
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, url.PathEscape(c.model))
	body, err := c.post(ctx, endpoint, reqBody)
	if err != nil {
		return "", err
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt was blocked: %s", result.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no response from API")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from API (finish reason %s)", result.Candidates[0].FinishReason)
	}

	return text.String(), nil
}

func (c *GeminiClient) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	return doRequest(c.client, req)
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatClient calls an OpenAI compatible chat completions endpoint such as DeepSeek's
type ChatClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewChatClient creates a client posting to the full completions URL apiURL
func NewChatClient(apiKey, apiURL, model string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (c *ChatClient) Name() string {
	return config.ProviderOpenAI
}

// Generate sends prompt as a single user message and returns the first choice
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := Request{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	body, err := doRequest(c.client, req)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// doRequest sends req and returns the body of a 200 answer. Any other status
// becomes an *APIError built from the provider's error body when it has one.
func doRequest(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var errBody googleErrorBody
		if json.Unmarshal(body, &errBody) == nil && errBody.Error.Message != "" {
			apiErr.Status = errBody.Error.Status
			apiErr.Message = errBody.Error.Message
		} else {
			msg := strings.TrimSpace(string(body))
			if len(msg) > maxErrorBody {
				msg = msg[:maxErrorBody]
			}
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			apiErr.Message = msg
		}
		return nil, apiErr
	}

	return body, nil
}

// NewGenerator builds the client for the configured provider
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiModel, cfg.LLMTimeout), nil
	case config.ProviderOpenAI:
		return NewChatClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

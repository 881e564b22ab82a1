package openai

import (
	"net/http"
	"time"

	sdk "github.com/sashabaranov/go-openai"

	"lights-assistant/internal/infra"
)

const defaultModel = "gpt-4.1-mini"

// Client wraps the OpenAI API for chat completion with tool calling and for
// audio transcription. A custom base URL points it at OpenAI-compatible
// backends (local models, proxies).
type Client struct {
	api      *sdk.Client
	model    string
	language string
	retry    infra.RetryConfig
}

func NewClient(apiKey, model, language string) *Client {
	return NewClientWithURL(apiKey, model, language, "")
}

func NewClientWithURL(apiKey, model, language, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}

	cfg := sdk.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &Client{
		api:      sdk.NewClientWithConfig(cfg),
		model:    model,
		language: language,
		retry:    infra.DefaultRetryConfig(),
	}
}

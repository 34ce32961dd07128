package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"wellness-bot/internal/infra/metrics"
)

const defaultModel = "gpt-4.1-mini"

// Client выполняет Chat Completions запросы и пишет метрики.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient создаёт клиента OpenAI.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout + 5*time.Second}
	if model == "" {
		model = defaultModel
	}
	return &Client{api: goopenai.NewClientWithConfig(cfg), model: model}
}

// Model возвращает модель по умолчанию.
func (c *Client) Model() string {
	return c.model
}

// CreateChatCompletion вызывает /chat/completions.
func (c *Client) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	metrics.ObserveNetworkRequest("openai", "chat_completions", start, err)
	if err != nil {
		return goopenai.ChatCompletionResponse{}, fmt.Errorf("openai: %w", err)
	}
	metrics.ObserveLLMGeneration(req.Model, time.Since(start), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	return resp, nil
}

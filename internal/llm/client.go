// Package llm is the gateway to the chat-completion upstream. One prompt in,
// raw text out; no retries, the caller decides how to surface failures.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"telegram-quiz-bot/internal/config"
)

// Errors returned by Generate.
var (
	// ErrNoAPIKey means the upstream credential is not configured. Returned
	// immediately, without a network call.
	ErrNoAPIKey = errors.New("completion api key is not configured")

	// ErrUpstream covers transport failures, non-success responses and
	// responses missing the expected content.
	ErrUpstream = errors.New("completion request failed")
)

// chatClient is the minimal completion surface used by the gateway; the
// real client is swapped for a fake in tests.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client generates text through an OpenAI-compatible chat endpoint with a
// single user-role message and a fixed temperature.
type Client struct {
	chat        chatClient
	model       string
	temperature float32
}

// NewClient creates a completion gateway from configuration. A missing API
// key is not an error here: Generate reports ErrNoAPIKey per call.
func NewClient(cfg config.OpenRouterConfig) *Client {
	c := &Client{model: cfg.Model, temperature: cfg.Temperature}
	if cfg.APIKey == "" {
		return c
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	// The transport's own timeout is the only limit on a generation call;
	// there is no cancellation path once a call is issued.
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	c.chat = openai.NewClientWithConfig(oc)
	return c
}

// Generate sends the prompt and returns the first completion's content
// verbatim. A single attempt, no session state is touched.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.chat == nil {
		return "", ErrNoAPIKey
	}

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no content in response", ErrUpstream)
	}

	return resp.Choices[0].Message.Content, nil
}

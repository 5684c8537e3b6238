package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-quiz-bot/internal/config"
)

type fakeChat struct {
	resp  openai.ChatCompletionResponse
	err   error
	calls int
	req   openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.req = req
	return f.resp, f.err
}

func completionWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerate_ReturnsContentVerbatim(t *testing.T) {
	chat := &fakeChat{resp: completionWith("  Описание: зверь.\nЗагаданное слово: тигр  ")}
	c := &Client{chat: chat, model: "openai/gpt-3.5-turbo", temperature: 0.7}

	got, err := c.Generate(context.Background(), "загадай слово")
	require.NoError(t, err)

	// No trimming, no format validation.
	assert.Equal(t, "  Описание: зверь.\nЗагаданное слово: тигр  ", got)
	assert.Equal(t, "openai/gpt-3.5-turbo", chat.req.Model)
	assert.Equal(t, float32(0.7), chat.req.Temperature)
	require.Len(t, chat.req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, chat.req.Messages[0].Role)
}

func TestGenerate_MissingKeyFailsWithoutCall(t *testing.T) {
	c := NewClient(config.OpenRouterConfig{Model: "m"})

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerate_UpstreamError(t *testing.T) {
	chat := &fakeChat{err: errors.New("status 502")}
	c := &Client{chat: chat, model: "m"}

	_, err := c.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestGenerate_EmptyChoicesIsUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		resp openai.ChatCompletionResponse
	}{
		{"no choices", openai.ChatCompletionResponse{}},
		{"empty content", completionWith("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{resp: tt.resp}
			c := &Client{chat: chat, model: "m"}

			_, err := c.Generate(context.Background(), "prompt")
			assert.ErrorIs(t, err, ErrUpstream, "missing content is never an empty success")
		})
	}
}

func TestGenerate_SingleAttempt(t *testing.T) {
	chat := &fakeChat{err: errors.New("timeout")}
	c := &Client{chat: chat, model: "m"}

	_, _ = c.Generate(context.Background(), "prompt")
	assert.Equal(t, 1, chat.calls, "no automatic retry")
}

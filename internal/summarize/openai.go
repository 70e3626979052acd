package summarize

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// GPT4oMini is the default chat model.
const GPT4oMini = "gpt-4o-mini"

// OpenAI summarizes with the chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns a summarizer for apiKey. A non-empty baseURL overrides
// the API endpoint.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: GPT4oMini}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(prepareInput(text), maxSentences),
			},
		},
		Temperature: 0.2,
		MaxTokens:   400,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errEmptyResponse
	}
	return out, nil
}

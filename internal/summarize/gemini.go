package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

var errEmptyResponse = errors.New("empty response")

// Gemini summarizes with Google's Gemini API.
type Gemini struct {
	client   *genai.Client
	generate func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// NewGemini opens a client for apiKey. Call Close when done.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.2)
	return &Gemini{
		client: client,
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return model.GenerateContent(ctx, genai.Text(prompt))
		},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	resp, err := g.generate(ctx, buildPrompt(prepareInput(text), maxSentences))
	if err != nil {
		return "", err
	}
	out := responseText(resp)
	if out == "" {
		return "", errEmptyResponse
	}
	return out, nil
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

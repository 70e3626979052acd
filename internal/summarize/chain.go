package summarize

import (
	"context"
	"errors"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
)

// Budget gates calls to a provider. *ratelimit.Budget implements it.
type Budget interface {
	Use(provider string) error
}

// Chain tries remote summarizers in order, each gated by the budget, then
// the ungated fallback.
type Chain struct {
	remote   []Summarizer
	fallback Summarizer
	budget   Budget
}

// NewChain builds a chain. budget and fallback may be nil.
func NewChain(budget Budget, fallback Summarizer, remote ...Summarizer) *Chain {
	return &Chain{remote: remote, fallback: fallback, budget: budget}
}

func (c *Chain) Name() string { return "chain" }

// Summarize returns the first successful summary. When all fail the error is
// a *news.SummarizeError joining every cause.
func (c *Chain) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	var errs []error
	steps := append([]Summarizer(nil), c.remote...)
	if c.fallback != nil {
		steps = append(steps, c.fallback)
	}
	for i, s := range steps {
		if c.budget != nil && i < len(c.remote) {
			if err := c.budget.Use(s.Name()); err != nil {
				errs = append(errs, &news.SummarizeError{Provider: s.Name(), Err: err})
				continue
			}
		}

		out, err := s.Summarize(ctx, text, maxSentences)
		if err == nil {
			return out, nil
		}
		logger.Debug("Summarizer failed", "provider", s.Name(), "error", err)
		errs = append(errs, &news.SummarizeError{Provider: s.Name(), Err: err})

		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", &news.SummarizeError{Provider: c.Name(), Err: errors.New("no summarizers configured")}
	}
	return "", &news.SummarizeError{Provider: c.Name(), Err: errors.Join(errs...)}
}

// OrPlaceholder summarizes text with s, substituting Placeholder on failure.
// ok is false when the placeholder was used.
func OrPlaceholder(ctx context.Context, s Summarizer, text string, maxSentences int) (summary string, ok bool) {
	if s == nil {
		return Placeholder, false
	}
	out, err := s.Summarize(ctx, text, maxSentences)
	if err != nil {
		logger.Warn("Summary unavailable", "provider", s.Name(), "error", err)
		return Placeholder, false
	}
	return out, true
}

package news

import (
	"fmt"
	"strings"
	"time"
)

// Window restricts results by recency.
type Window string

const (
	WindowAll     Window = "all"
	WindowLast24h Window = "last24h"
)

// RecentWindow is the span covered by WindowLast24h.
const RecentWindow = 24 * time.Hour

// ParseWindow accepts "", "all", "24h" and "last24h".
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return WindowAll, nil
	case "24h", "last24h":
		return WindowLast24h, nil
	default:
		return "", fmt.Errorf("%w: unknown range %q", ErrInvalidQuery, s)
	}
}

// QuerySpec is the filter configuration for one invocation. Empty strings and
// a zero TopN mean "not set".
type QuerySpec struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Window   Window `json:"window,omitempty"`
	TopN     int    `json:"top_n,omitempty"`
}

// Validate reports ErrInvalidQuery for a negative TopN or an unknown window.
func (q QuerySpec) Validate() error {
	if q.TopN < 0 {
		return fmt.Errorf("%w: top must be positive, got %d", ErrInvalidQuery, q.TopN)
	}
	switch q.Window {
	case "", WindowAll, WindowLast24h:
	default:
		return fmt.Errorf("%w: unknown window %q", ErrInvalidQuery, q.Window)
	}
	return nil
}

// Filter returns the articles matching every set predicate, preserving order.
func Filter(articles []Article, q QuerySpec, now time.Time) []Article {
	query := strings.ToLower(strings.TrimSpace(q.Query))
	category := strings.TrimSpace(q.Category)

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if query != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.Summary), query) {
			continue
		}
		if q.Window == WindowLast24h && !isRecent(a.PublishedAt, now) {
			continue
		}
		if category != "" && !a.HasCategory(category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// isRecent is false for unknown timestamps: they cannot be proven recent.
func isRecent(p *time.Time, now time.Time) bool {
	if p == nil {
		return false
	}
	return now.Sub(*p) <= RecentWindow
}

// Package news holds the aggregation core: item normalization, deduplication,
// keyword classification, importance scoring, filtering and ranking.
package news

import (
	"context"
	"time"
)

// RawItem is one entry produced by a source adapter, before any cleaning.
type RawItem struct {
	Title        string
	SummaryHTML  string // may contain markup and entities
	Link         string
	SourceName   string
	PublishedRaw string // format depends on the source, empty when absent
}

// NormalizedItem is a RawItem with plain text, a resolved timestamp and an identity key.
type NormalizedItem struct {
	Title       string
	Summary     string
	Link        string
	IdentityKey string
	PublishedAt *time.Time // nil means unknown recency
	SourceName  string
}

// Article is the merged record for one identity key within a pipeline run.
type Article struct {
	IdentityKey     string     `json:"identity_key"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Link            string     `json:"link"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Categories      []string   `json:"categories"`
	Sources         []string   `json:"sources"`
	SourceCount     int        `json:"source_count"`
	ImportanceScore int        `json:"importance_score"`
}

// HasCategory reports whether label is one of the article's categories.
func (a Article) HasCategory(label string) bool {
	for _, c := range a.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// Descriptor names one configured source and what to ask it for.
type Descriptor struct {
	Name        string
	Kind        string   // rss | gnews | naver
	Target      string   // feed URL or search query
	TimeLayouts []string // tried before DefaultTimeLayouts
}

// Adapter produces raw items for a descriptor. Implementations own transport,
// parsing and any retry policy.
type Adapter interface {
	Fetch(ctx context.Context, d Descriptor) ([]RawItem, error)
}

// AdapterFunc lets a plain function act as an Adapter.
type AdapterFunc func(ctx context.Context, d Descriptor) ([]RawItem, error)

// Fetch calls f.
func (f AdapterFunc) Fetch(ctx context.Context, d Descriptor) ([]RawItem, error) {
	return f(ctx, d)
}

// Source binds a descriptor to the adapter that serves it.
type Source struct {
	Descriptor
	Adapter Adapter
}

// Batch is everything one source returned during a run.
type Batch struct {
	Descriptor Descriptor
	Items      []RawItem
}

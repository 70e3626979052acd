package news

import (
	"errors"
	"time"

	"github.com/deusflow/campusnews/internal/logger"
)

// Pipeline runs normalize, dedup, classify and score over collected batches,
// then filters and ranks on demand. Its configuration is read-only, so one
// Pipeline may serve concurrent requests.
type Pipeline struct {
	taxonomy   Taxonomy
	importance KeywordSet
	normalizer *Normalizer
}

// BuildStats describes one Build call.
type BuildStats struct {
	Items         int `json:"items"`
	Articles      int `json:"articles"`
	Merged        int `json:"merged"`
	ParseFailures int `json:"parse_failures"`
	Dropped       int `json:"dropped"`
}

// NewPipeline binds the taxonomy and importance keywords. Zone-less
// timestamps are read in loc.
func NewPipeline(taxonomy Taxonomy, importance KeywordSet, loc *time.Location) *Pipeline {
	return &Pipeline{
		taxonomy:   taxonomy,
		importance: importance,
		normalizer: NewNormalizer(loc),
	}
}

// Taxonomy returns the classification taxonomy.
func (p *Pipeline) Taxonomy() Taxonomy { return p.taxonomy }

// Location is the zone used for zone-less timestamps.
func (p *Pipeline) Location() *time.Location { return p.normalizer.Location() }

// Build folds batches, in the given order, into scored articles. Items that
// cannot be identified are dropped; unparseable timestamps become unknown.
func (p *Pipeline) Build(batches []Batch) ([]Article, BuildStats) {
	var stats BuildStats
	dedup := NewDeduplicator(p.taxonomy)

	for _, b := range batches {
		for _, raw := range b.Items {
			stats.Items++
			if raw.SourceName == "" {
				raw.SourceName = b.Descriptor.Name
			}

			item, err := p.normalizer.Normalize(raw, b.Descriptor.TimeLayouts)
			if errors.Is(err, ErrUnidentifiable) {
				stats.Dropped++
				continue
			}
			if err != nil {
				stats.ParseFailures++
				logger.Debug("Timestamp not parsed", "source", raw.SourceName, "error", err)
			}
			dedup.Add(item)
		}
	}

	articles := dedup.Articles()
	ScoreAll(articles, p.importance)

	stats.Articles = len(articles)
	stats.Merged = dedup.Merged()
	return articles, stats
}

// Query filters then ranks articles.
func (p *Pipeline) Query(articles []Article, q QuerySpec, now time.Time) ([]Article, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return Rank(Filter(articles, q, now), q), nil
}

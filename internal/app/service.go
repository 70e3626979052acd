package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/campusnews/internal/cache"
	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/metrics"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/summarize"
)

// Options tunes one query.
type Options struct {
	Summarize bool // replace feed summaries with generated ones
	Refresh   bool // rebuild the corpus even if a cached one is fresh
}

// Result is what one query returns to the presentation layer.
type Result struct {
	RunID         string      `json:"run_id"`
	Articles      []news.View `json:"articles"`
	Total         int         `json:"total"`
	FailedSources []string    `json:"failed_sources"`
	FromCache     bool        `json:"from_cache"`
	BuiltAt       time.Time   `json:"built_at"`
}

// Corpus is one built, scored article set. It is what the cache stores.
type Corpus struct {
	Articles      []news.Article  `json:"articles"`
	FailedSources []string        `json:"failed_sources"`
	Stats         news.BuildStats `json:"stats"`
	BuiltAt       time.Time       `json:"built_at"`
}

// BodyExtractor fetches an article's full text for summarization.
type BodyExtractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// ServiceDeps wires a Service. Cache, Summarizer, Extractor, Metrics and Clock may be nil.
type ServiceDeps struct {
	Pipeline         *news.Pipeline
	Aggregator       *Aggregator
	Cache            cache.Cache
	CacheTTL         time.Duration
	Summarizer       summarize.Summarizer
	Extractor        BodyExtractor
	SummarySentences int
	MaxSummaries     int           // summaries per query, top of the ranking first
	SummaryWorkers   int           // concurrent extract+summarize tasks
	SummaryTimeout   time.Duration // deadline for all summaries of one query
	RequestTimeout   time.Duration
	Metrics          *metrics.Metrics
	Clock            func() time.Time
}

// Service builds corpora on demand, caches them and answers queries.
type Service struct {
	deps     ServiceDeps
	cacheKey string
	buildMu  sync.Mutex
}

func NewService(deps ServiceDeps) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.SummarySentences < 1 {
		deps.SummarySentences = 3
	}
	if deps.MaxSummaries < 1 {
		deps.MaxSummaries = 10
	}
	if deps.SummaryWorkers < 1 {
		deps.SummaryWorkers = 3
	}
	if deps.SummaryTimeout <= 0 {
		deps.SummaryTimeout = 30 * time.Second
	}

	names := make([]string, 0)
	for _, d := range deps.Aggregator.Sources() {
		names = append(names, d.Kind+"|"+d.Name+"|"+d.Target)
	}
	return &Service{deps: deps, cacheKey: cache.GenerateKey("corpus", names...)}
}

// Categories lists the taxonomy labels in configuration order.
func (s *Service) Categories() []string {
	return s.deps.Pipeline.Taxonomy().Labels()
}

// Sources lists the active sources.
func (s *Service) Sources() []news.Descriptor {
	return s.deps.Aggregator.Sources()
}

// Query filters and ranks the current corpus. Source failures never fail a
// query; only an invalid QuerySpec does.
func (s *Service) Query(ctx context.Context, q news.QuerySpec, opts Options) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	corpus, fromCache := s.corpus(ctx, runID, opts.Refresh)

	ranked, err := s.deps.Pipeline.Query(corpus.Articles, q, s.deps.Clock())
	if err != nil {
		return nil, err
	}

	views := news.NewViews(ranked, s.deps.Pipeline.Location())
	if opts.Summarize {
		s.summarizeViews(ctx, ranked, views)
	}

	return &Result{
		RunID:         runID,
		Articles:      views,
		Total:         len(corpus.Articles),
		FailedSources: corpus.FailedSources,
		FromCache:     fromCache,
		BuiltAt:       corpus.BuiltAt,
	}, nil
}

// corpus returns a fresh cached corpus or builds one. Concurrent misses build once.
func (s *Service) corpus(ctx context.Context, runID string, refresh bool) (*Corpus, bool) {
	if !refresh {
		if c, ok := s.cached(ctx); ok {
			return c, true
		}
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if !refresh {
		if c, ok := s.cached(ctx); ok {
			return c, true
		}
	}

	c := s.Build(ctx, runID)
	if len(c.FailedSources) > 0 && len(c.FailedSources) == len(s.deps.Aggregator.Sources()) {
		return c, false
	}
	if err := cache.SetJSON(ctx, s.deps.Cache, s.cacheKey, c, s.deps.CacheTTL); err != nil {
		logger.Warn("Failed to cache corpus", "run_id", runID, "error", err)
	}
	return c, false
}

func (s *Service) cached(ctx context.Context) (*Corpus, bool) {
	var c Corpus
	err := cache.GetJSON(ctx, s.deps.Cache, s.cacheKey, &c)
	switch {
	case err == nil:
		s.deps.Metrics.IncrementCache(true)
		return &c, true
	case errors.Is(err, cache.ErrMiss):
	default:
		logger.Warn("Corpus cache read failed", "error", err)
	}
	s.deps.Metrics.IncrementCache(false)
	return nil, false
}

// Build fetches every source and runs the pipeline, bypassing the cache.
func (s *Service) Build(ctx context.Context, runID string) *Corpus {
	start := time.Now()
	if s.deps.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deps.RequestTimeout)
		defer cancel()
	}

	batches, failures := s.deps.Aggregator.Collect(ctx)
	articles, stats := s.deps.Pipeline.Build(batches)

	failed := make([]string, 0, len(failures))
	for _, f := range failures {
		failed = append(failed, f.Source)
	}

	elapsed := time.Since(start)
	s.deps.Metrics.RecordRun(metrics.RunStats{
		Items:         stats.Items,
		Articles:      stats.Articles,
		Merged:        stats.Merged,
		FailedSources: len(failures),
		ParseFailures: stats.ParseFailures,
	}, len(s.deps.Aggregator.Sources()))
	s.deps.Metrics.RecordProcessingTime(elapsed)

	logger.Info("Corpus built",
		"run_id", runID,
		"sources", len(s.deps.Aggregator.Sources()),
		"failed", len(failures),
		"items", stats.Items,
		"articles", stats.Articles,
		"merged", stats.Merged,
		"parse_failures", stats.ParseFailures,
		"duration", elapsed.Round(time.Millisecond),
	)

	return &Corpus{
		Articles:      articles,
		FailedSources: failed,
		Stats:         stats,
		BuiltAt:       s.deps.Clock(),
	}
}

// summarizeViews replaces the summaries of the first MaxSummaries views,
// falling back to the placeholder. Views past the cap keep their feed summary.
// All work shares one SummaryTimeout deadline.
func (s *Service) summarizeViews(ctx context.Context, articles []news.Article, views []news.View) {
	n := len(articles)
	if n > s.deps.MaxSummaries {
		n = s.deps.MaxSummaries
	}
	if n == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.deps.SummaryTimeout)
	defer cancel()

	sem := make(chan struct{}, s.deps.SummaryWorkers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				s.deps.Metrics.IncrementSummaries(false)
				views[i].Summary = summarize.Placeholder
				return
			}
			defer func() { <-sem }()

			text := s.summaryInput(ctx, articles[i])
			summary, ok := summarize.OrPlaceholder(ctx, s.deps.Summarizer, text, s.deps.SummarySentences)
			s.deps.Metrics.IncrementSummaries(ok)
			views[i].Summary = summary
		}(i)
	}
	wg.Wait()
}

// summaryInput prefers the extracted article body, then the feed summary, then the title.
func (s *Service) summaryInput(ctx context.Context, a news.Article) string {
	if s.deps.Extractor != nil && a.Link != "" {
		body, err := s.deps.Extractor.Extract(ctx, a.Link)
		if err == nil && body != "" {
			return body
		}
		logger.Debug("Article body unavailable", "link", a.Link, "error", err)
	}
	if a.Summary != "" {
		return a.Summary
	}
	return a.Title
}

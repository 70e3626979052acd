// Package app wires configuration, adapters, caches and summarizers into a
// query Service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/deusflow/campusnews/internal/cache"
	"github.com/deusflow/campusnews/internal/config"
	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/metrics"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/ratelimit"
	"github.com/deusflow/campusnews/internal/retry"
	"github.com/deusflow/campusnews/internal/scraper"
	"github.com/deusflow/campusnews/internal/summarize"
)

// App owns the long-lived resources behind a Service.
type App struct {
	Config  *config.Config
	Catalog *config.Catalog
	Service *Service
	Metrics *metrics.Metrics
	Budget  *ratelimit.Budget

	closers []func()
}

// New loads the catalog named by cfg and builds every component. Catalog
// problems are fatal; optional integrations that cannot start are logged and
// left out.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, &news.ConfigError{Field: "TIMEZONE", Err: err}
	}

	a := &App{Config: cfg, Catalog: cat, Metrics: metrics.Global}

	client := NewHTTPClient(cfg.SourceTimeout)
	sources := BuildSources(cat.Sources, cfg, client)
	if len(sources) == 0 {
		return nil, &news.ConfigError{Field: "sources", Err: fmt.Errorf("no usable sources among %d configured", len(cat.Sources))}
	}

	// Providers share one daily ceiling.
	a.Budget = ratelimit.NewBudget(map[string]int{
		"gemini": cfg.MaxSummaryRequests,
		"openai": cfg.MaxSummaryRequests,
	}, cfg.MaxSummaryRequests)

	var extractor BodyExtractor
	if cfg.FetchArticleBody {
		extractor = scraper.New(client, retry.RetryConfig{MaxAttempts: 2, Delay: 300 * time.Millisecond})
	}

	a.Service = NewService(ServiceDeps{
		Pipeline:         news.NewPipeline(cat.Taxonomy, cat.Importance, loc),
		Aggregator:       NewAggregator(sources, cfg.MaxConcurrency, cfg.SourceTimeout),
		Cache:            a.buildCache(ctx),
		CacheTTL:         cfg.CacheTTL,
		Summarizer:       a.buildSummarizer(ctx),
		Extractor:        extractor,
		SummarySentences: cfg.SummarySentences,
		MaxSummaries:     cfg.MaxSummaries,
		SummaryWorkers:   cfg.SummaryWorkers,
		SummaryTimeout:   cfg.SummaryTimeout,
		RequestTimeout:   cfg.RequestTimeout,
		Metrics:          a.Metrics,
	})

	logger.Info("App ready",
		"sources", len(sources),
		"disabled", len(cat.Disabled),
		"categories", cat.Taxonomy.Len(),
		"cache", cfg.CacheType,
	)
	return a, nil
}

func (a *App) buildCache(ctx context.Context) cache.Cache {
	switch a.Config.CacheType {
	case config.CacheRedis:
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Address:  a.Config.RedisAddress,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", "error", err)
			return cache.NewMemory(time.Minute)
		}
		a.closers = append(a.closers, func() { _ = r.Close() })
		return r
	case config.CacheNone:
		return cache.Noop{}
	default:
		return cache.NewMemory(time.Minute)
	}
}

func (a *App) buildSummarizer(ctx context.Context) summarize.Summarizer {
	var remote []summarize.Summarizer
	if a.Config.GeminiAPIKey != "" {
		g, err := summarize.NewGemini(ctx, a.Config.GeminiAPIKey)
		if err != nil {
			logger.Warn("Gemini summarizer disabled", "error", err)
		} else {
			a.closers = append(a.closers, g.Close)
			remote = append(remote, g)
		}
	}
	if a.Config.OpenAIAPIKey != "" {
		remote = append(remote, summarize.NewOpenAI(a.Config.OpenAIAPIKey, ""))
	}
	return summarize.NewChain(a.Budget, summarize.Extractive{}, remote...)
}

// Close releases clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

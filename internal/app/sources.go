package app

import (
	"net/http"
	"time"

	"github.com/deusflow/campusnews/internal/config"
	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/naver"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/retry"
	"github.com/deusflow/campusnews/internal/rss"
)

// NewHTTPClient is shared by all adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// BuildSources binds each enabled descriptor to its adapter. Naver sources
// are skipped when credentials are missing.
func BuildSources(descriptors []news.Descriptor, cfg *config.Config, client *http.Client) []news.Source {
	feeds := rss.New(client, retry.DefaultConfig)
	gnews := rss.NewGoogleNews(feeds, "")
	search := naver.New(client, naver.Options{
		ClientID:     cfg.NaverClientID,
		ClientSecret: cfg.NaverClientSecret,
		Retry:        retry.DefaultConfig,
	})

	sources := make([]news.Source, 0, len(descriptors))
	for _, d := range descriptors {
		var adapter news.Adapter
		switch d.Kind {
		case config.KindRSS:
			adapter = feeds
		case config.KindGNews:
			adapter = gnews
		case config.KindNaver:
			if !search.Configured() {
				logger.Warn("Skipping source without Naver credentials", "source", d.Name)
				continue
			}
			adapter = search
		}
		sources = append(sources, news.Source{Descriptor: d, Adapter: adapter})
	}
	return sources
}

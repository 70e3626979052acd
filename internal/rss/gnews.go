package rss

import (
	"context"
	"net/url"

	"github.com/deusflow/campusnews/internal/news"
)

// GoogleNewsBaseURL is the Google News RSS search endpoint.
const GoogleNewsBaseURL = "https://news.google.com/rss/search"

// GoogleNews turns a descriptor's keyword query into a Korean-edition Google
// News search feed and reads it with the feed adapter.
type GoogleNews struct {
	feeds   *Adapter
	baseURL string
}

// NewGoogleNews wraps feeds. An empty baseURL means GoogleNewsBaseURL.
func NewGoogleNews(feeds *Adapter, baseURL string) *GoogleNews {
	if baseURL == "" {
		baseURL = GoogleNewsBaseURL
	}
	return &GoogleNews{feeds: feeds, baseURL: baseURL}
}

// Fetch implements news.Adapter.
func (g *GoogleNews) Fetch(ctx context.Context, d news.Descriptor) ([]news.RawItem, error) {
	d.Target = SearchURL(g.baseURL, d.Target)
	return g.feeds.Fetch(ctx, d)
}

// SearchURL builds the search feed URL for query.
func SearchURL(baseURL, query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", "ko")
	v.Set("gl", "KR")
	v.Set("ceid", "KR:ko")
	return baseURL + "?" + v.Encode()
}

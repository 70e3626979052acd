// Package rss fetches RSS/Atom feeds and Google News searches as raw items.
package rss

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/retry"
)

// UserAgent is sent with every feed request.
const UserAgent = "campusnews/1.0 (+https://github.com/deusflow/campusnews)"

const maxFeedBytes = 10 << 20

// Adapter reads a feed URL taken from the descriptor target.
type Adapter struct {
	client *http.Client
	retry  retry.RetryConfig
}

// New returns a feed adapter. A nil client means http.DefaultClient.
func New(client *http.Client, cfg retry.RetryConfig) *Adapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Adapter{client: client, retry: cfg}
}

// Fetch implements news.Adapter.
func (a *Adapter) Fetch(ctx context.Context, d news.Descriptor) ([]news.RawItem, error) {
	feed, err := a.fetchFeed(ctx, d.Target)
	if err != nil {
		return nil, err
	}

	items := make([]news.RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, toRawItem(it, d.Name))
	}
	logger.Debug("Feed loaded", "source", d.Name, "items", len(items))
	return items, nil
}

func (a *Adapter) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	var feed *gofeed.Feed
	err := retry.WithRetry(ctx, a.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

		resp, err := a.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err := fmt.Errorf("%w: %s", news.ErrBadStatus, resp.Status)
			if retry.RetryableStatus(resp.StatusCode) {
				return err
			}
			return retry.Permanent(err)
		}

		parsed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, maxFeedBytes))
		if err != nil {
			return retry.Permanent(fmt.Errorf("%w: %v", news.ErrDecode, err))
		}
		feed = parsed
		return nil
	})
	return feed, err
}

func toRawItem(it *gofeed.Item, source string) news.RawItem {
	summary := it.Description
	if summary == "" {
		summary = it.Content
	}
	published := it.Published
	if published == "" {
		published = it.Updated
	}
	return news.RawItem{
		Title:        it.Title,
		SummaryHTML:  summary,
		Link:         it.Link,
		SourceName:   source,
		PublishedRaw: published,
	}
}

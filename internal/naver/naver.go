// Package naver reads the Naver News search API.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/retry"
)

const (
	// BaseURL is the search API host.
	BaseURL = "https://openapi.naver.com"

	searchPath     = "/v1/search/news.json"
	defaultDisplay = 30
	maxDisplay     = 100
	maxBodyBytes   = 4 << 20
)

// Options configures Client. Zero values take the API defaults.
type Options struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Display      int        // results per query, 1..100
	RatePerSec   rate.Limit // requests per second, default 10
	Retry        retry.RetryConfig
}

// Client calls the search API with the descriptor target as the query.
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
}

type searchResponse struct {
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// New returns a Client. A nil httpClient means http.DefaultClient.
func New(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.Display <= 0 {
		opts.Display = defaultDisplay
	}
	if opts.Display > maxDisplay {
		opts.Display = maxDisplay
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 10
	}
	return &Client{
		http:    httpClient,
		opts:    opts,
		limiter: rate.NewLimiter(opts.RatePerSec, 1),
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.opts.ClientID != "" && c.opts.ClientSecret != ""
}

// Fetch implements news.Adapter.
func (c *Client) Fetch(ctx context.Context, d news.Descriptor) ([]news.RawItem, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("naver credentials are not configured")
	}

	var res searchResponse
	err := retry.WithRetry(ctx, c.opts.Retry, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return retry.Permanent(err)
		}
		return c.search(ctx, d.Target, &res)
	})
	if err != nil {
		return nil, err
	}

	items := make([]news.RawItem, 0, len(res.Items))
	for _, it := range res.Items {
		link := it.OriginalLink
		if link == "" {
			link = it.Link
		}
		items = append(items, news.RawItem{
			Title:        it.Title,
			SummaryHTML:  it.Description,
			Link:         link,
			SourceName:   d.Name,
			PublishedRaw: it.PubDate,
		})
	}
	logger.Debug("Naver search loaded", "source", d.Name, "items", len(items), "total", res.Total)
	return items, nil
}

func (c *Client) search(ctx context.Context, query string, out *searchResponse) error {
	q := url.Values{}
	q.Set("query", query)
	q.Set("display", strconv.Itoa(c.opts.Display))
	q.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return retry.Permanent(err)
	}
	req.Header.Set("X-Naver-Client-Id", c.opts.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.opts.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Permanent(ctx.Err())
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %s", news.ErrBadStatus, resp.Status)
		if retry.RetryableStatus(resp.StatusCode) {
			return err
		}
		return retry.Permanent(err)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("%w: %v", news.ErrDecode, err))
	}
	return nil
}

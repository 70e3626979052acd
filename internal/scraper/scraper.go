// Package scraper pulls article body text from news pages for summarization.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/retry"
)

// ErrNoContent means the page loaded but no body text was found.
var ErrNoContent = errors.New("no article content")

const (
	maxPageBytes     = 5 << 20
	minParagraphLen  = 10
	defaultMaxRunes  = 1800
	userAgentBrowser = "Mozilla/5.0 (compatible; campusnews/1.0)"
)

// siteSelectors are tried in order for hosts ending in host.
var siteSelectors = []struct {
	host      string
	selectors []string
}{
	{host: "yna.co.kr", selectors: []string{".story-news article p", "article.story-news p", "#articleWrap p"}},
	{host: "news.naver.com", selectors: []string{"#dic_area", "#newsct_article", "#articleBodyContents"}},
	// ndsoft CMS used by most university papers.
	{host: "unn.net", selectors: []string{"#article-view-content-div p", "#article-view-content-div"}},
	{host: "kyosu.net", selectors: []string{"#article-view-content-div p", "#article-view-content-div"}},
	{host: "veritas-a.com", selectors: []string{"#article-view-content-div p", "#article-view-content-div"}},
}

var genericSelectors = []string{
	"[itemprop=articleBody] p",
	"#article-view-content-div p",
	".article-body p",
	".article_body p",
	"#articleBody p",
	"#article_body p",
	".news_body p",
	"article p",
	".content p",
}

// junkMarkers flag bylines, copyright notices and subscription prompts.
var junkMarkers = []string{
	"무단전재", "무단 전재", "재배포 금지", "재배포금지", "저작권자",
	"copyright", "ⓒ", "©", "기사제보", "구독하기", "좋아요", "많이 본 뉴스",
}

// Extractor fetches article pages and extracts the body text.
type Extractor struct {
	client   *http.Client
	retry    retry.RetryConfig
	maxRunes int
}

// New returns an Extractor. A nil client means http.DefaultClient.
func New(client *http.Client, cfg retry.RetryConfig) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Extractor{client: client, retry: cfg, maxRunes: defaultMaxRunes}
}

// Extract returns the cleaned body of the article at link, trimmed to whole
// paragraphs.
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid article link %q", link)
	}

	doc, err := e.fetch(ctx, link)
	if err != nil {
		return "", err
	}

	body := cleanBody(extractParagraphs(doc, u.Hostname()), e.maxRunes)
	if body == "" {
		return "", ErrNoContent
	}
	logger.Debug("Article body extracted", "link", link, "runes", utf8.RuneCountInString(body))
	return body, nil
}

func (e *Extractor) fetch(ctx context.Context, link string) (*goquery.Document, error) {
	var doc *goquery.Document
	err := retry.WithRetry(ctx, e.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgentBrowser)
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

		resp, err := e.client.Do(req)
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

		parsed, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			return retry.Permanent(fmt.Errorf("%w: %v", news.ErrDecode, err))
		}
		doc = parsed
		return nil
	})
	return doc, err
}

// extractParagraphs tries the site's selectors, then the generic ones, and
// returns the first non-empty match.
func extractParagraphs(doc *goquery.Document, host string) []string {
	doc.Find("script, style, noscript, figure, figcaption, .byline, .copyright").Remove()
	// Naver and ndsoft bodies separate paragraphs with <br>.
	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})

	host = strings.ToLower(host)
	var chains [][]string
	for _, s := range siteSelectors {
		if host == s.host || strings.HasSuffix(host, "."+s.host) {
			chains = append(chains, s.selectors)
		}
	}
	chains = append(chains, genericSelectors)

	for _, chain := range chains {
		for _, selector := range chain {
			var paragraphs []string
			doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
				for _, line := range strings.Split(s.Text(), "\n") {
					if text := news.CleanText(line); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			})
			if len(paragraphs) > 0 {
				return paragraphs
			}
		}
	}
	return nil
}

// cleanBody drops short and junk paragraphs and keeps whole paragraphs up to maxRunes.
func cleanBody(paragraphs []string, maxRunes int) string {
	var kept []string
	total := 0
	for _, p := range paragraphs {
		if utf8.RuneCountInString(p) < minParagraphLen || isJunk(p) {
			continue
		}
		n := utf8.RuneCountInString(p)
		if maxRunes > 0 && total > 0 && total+n > maxRunes {
			break
		}
		kept = append(kept, p)
		total += n + 2
	}
	return strings.Join(kept, "\n\n")
}

func isJunk(p string) bool {
	lower := strings.ToLower(p)
	for _, m := range junkMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

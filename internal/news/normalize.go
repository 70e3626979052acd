package news

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeLayouts is the fallback chain tried after any descriptor layouts.
var DefaultTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04",
	"2006.01.02.",
	"2006.01.02",
	"2006-01-02",
}

var errNoLayout = errors.New("no layout matched")

// trackingParams are dropped from links before hashing.
var trackingParams = []string{"fbclid", "gclid", "ref", "cmpid"}

// Normalizer turns RawItems into NormalizedItems. Layouts without a zone are
// read in its location.
type Normalizer struct {
	location *time.Location
	layouts  []string
}

// NewNormalizer returns a Normalizer using DefaultTimeLayouts. A nil location means UTC.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{location: loc, layouts: DefaultTimeLayouts}
}

// Location is the zone used for zone-less timestamps.
func (n *Normalizer) Location() *time.Location { return n.location }

// Normalize cleans raw. The returned item is usable even when err is a
// *ParseError: PublishedAt is then nil. ErrUnidentifiable means the item must be dropped.
func (n *Normalizer) Normalize(raw RawItem, layouts []string) (NormalizedItem, error) {
	title := CleanText(raw.Title)
	link := strings.TrimSpace(raw.Link)
	if title == "" && link == "" {
		return NormalizedItem{}, ErrUnidentifiable
	}

	item := NormalizedItem{
		Title:       title,
		Summary:     CleanText(raw.SummaryHTML),
		Link:        link,
		IdentityKey: IdentityKey(link, title),
		SourceName:  raw.SourceName,
	}

	published, err := n.ParseTimestamp(raw.PublishedRaw, layouts)
	item.PublishedAt = published
	return item, err
}

// ParseTimestamp tries extra layouts first, then the defaults. An empty value
// is unknown without being an error.
func (n *Normalizer) ParseTimestamp(value string, extra []string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, chain := range [][]string{extra, n.layouts} {
		for _, layout := range chain {
			if t, err := time.ParseInLocation(layout, value, n.location); err == nil {
				return &t, nil
			}
		}
	}
	return nil, &ParseError{Field: "published", Value: value, Err: errNoLayout}
}

// tagPattern matches something that looks like an HTML tag. A bare "<" in
// plain text (as in "Samsung<LG") does not.
var tagPattern = regexp.MustCompile(`<[A-Za-z/!][^>]*>`)

// CleanText strips markup, decodes entities and collapses whitespace. Only
// input containing a tag is parsed as HTML.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	text := s
	if tagPattern.MatchString(text) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	} else if strings.Contains(text, "&") {
		text = html.UnescapeString(text)
	}
	if strings.Contains(text, "&") {
		// Some feeds escape twice (&amp;quot;).
		text = html.UnescapeString(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// IdentityKey hashes the canonical link, or the canonical title when there is no link.
func IdentityKey(link, title string) string {
	if canon := CanonicalLink(link); canon != "" {
		return hashKey("link:" + canon)
	}
	return hashKey("title:" + CanonicalTitle(title))
}

// CanonicalLink lower-cases scheme and host, drops "www.", default ports,
// fragments, tracking parameters and a trailing slash, and sorts the query.
// http and https collapse to the same value.
func CanonicalLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return strings.ToLower(link)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host += ":" + port
	}

	q := u.Query()
	for key := range q {
		lk := strings.ToLower(key)
		if strings.HasPrefix(lk, "utm_") {
			q.Del(key)
			continue
		}
		for _, p := range trackingParams {
			if lk == p {
				q.Del(key)
			}
		}
	}

	path := strings.TrimRight(u.EscapedPath(), "/")

	var b strings.Builder
	b.WriteString(host)
	b.WriteString(path)
	if len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			vals := q[k]
			sort.Strings(vals)
			for j, v := range vals {
				if j > 0 {
					b.WriteByte('&')
				}
				b.WriteString(url.QueryEscape(k))
				b.WriteByte('=')
				b.WriteString(url.QueryEscape(v))
			}
		}
	}
	return b.String()
}

// CanonicalTitle lower-cases and collapses whitespace.
func CanonicalTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

func hashKey(s string) string {
	h := sha1.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

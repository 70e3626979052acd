package news

import (
	"strings"
	"time"
)

const (
	// UnknownDateLabel is shown for articles without a publish time.
	UnknownDateLabel = "날짜 미상"

	// DisplayDateLayout formats publish times for display.
	DisplayDateLayout = "2006-01-02 15:04"
)

// View is the presentation record of one ranked article.
type View struct {
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	Link              string     `json:"link"`
	Source            string     `json:"source"`
	DisplayCategories string     `json:"display_categories"`
	Categories        []string   `json:"categories"`
	FormattedDate     string     `json:"formatted_date"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	SourceCount       int        `json:"source_count"`
	ImportanceScore   int        `json:"importance_score"`
}

// NewView formats a in loc. A nil loc means UTC.
func NewView(a Article, loc *time.Location) View {
	if loc == nil {
		loc = time.UTC
	}

	formatted := UnknownDateLabel
	if a.PublishedAt != nil {
		formatted = a.PublishedAt.In(loc).Format(DisplayDateLayout)
	}

	return View{
		Title:             a.Title,
		Summary:           a.Summary,
		Link:              a.Link,
		Source:            strings.Join(a.Sources, ", "),
		DisplayCategories: strings.Join(a.Categories, ", "),
		Categories:        append([]string(nil), a.Categories...),
		FormattedDate:     formatted,
		PublishedAt:       a.PublishedAt,
		SourceCount:       a.SourceCount,
		ImportanceScore:   a.ImportanceScore,
	}
}

// NewViews formats every article in order.
func NewViews(articles []Article, loc *time.Location) []View {
	views := make([]View, len(articles))
	for i, a := range articles {
		views[i] = NewView(a, loc)
	}
	return views
}

package news

// Deduplicator folds NormalizedItems into one Article per identity key. It is
// not safe for concurrent use; a run owns exactly one.
type Deduplicator struct {
	taxonomy Taxonomy
	index    map[string]int
	articles []Article
	sources  []map[string]struct{}
	merged   int
}

// NewDeduplicator returns an empty Deduplicator classifying with taxonomy.
func NewDeduplicator(taxonomy Taxonomy) *Deduplicator {
	return &Deduplicator{
		taxonomy: taxonomy,
		index:    make(map[string]int),
	}
}

// Add records one sighting. The first sighting creates the article; later ones
// union categories, count new sources and fill in a missing timestamp or summary.
func (d *Deduplicator) Add(item NormalizedItem) {
	categories := Classify(item.Title, d.taxonomy)

	i, ok := d.index[item.IdentityKey]
	if !ok {
		d.index[item.IdentityKey] = len(d.articles)
		d.articles = append(d.articles, Article{
			IdentityKey: item.IdentityKey,
			Title:       item.Title,
			Summary:     item.Summary,
			Link:        item.Link,
			PublishedAt: item.PublishedAt,
			Categories:  categories,
			Sources:     []string{item.SourceName},
			SourceCount: 1,
		})
		d.sources = append(d.sources, map[string]struct{}{item.SourceName: {}})
		return
	}

	d.merged++
	a := &d.articles[i]
	a.Categories = mergeCategories(a.Categories, categories, d.taxonomy)
	if _, seen := d.sources[i][item.SourceName]; !seen {
		d.sources[i][item.SourceName] = struct{}{}
		a.Sources = append(a.Sources, item.SourceName)
		a.SourceCount = len(a.Sources)
	}
	if a.PublishedAt == nil && item.PublishedAt != nil {
		a.PublishedAt = item.PublishedAt
	}
	if a.Summary == "" {
		a.Summary = item.Summary
	}
}

// Merged is the number of sightings folded into an existing article.
func (d *Deduplicator) Merged() int { return d.merged }

// Len is the number of distinct articles.
func (d *Deduplicator) Len() int { return len(d.articles) }

// Articles returns the articles in first-sighting order.
func (d *Deduplicator) Articles() []Article {
	out := make([]Article, len(d.articles))
	for i, a := range d.articles {
		a.Categories = append([]string(nil), a.Categories...)
		a.Sources = append([]string(nil), a.Sources...)
		out[i] = a
	}
	return out
}

// Deduplicate folds items in order with a fresh Deduplicator.
func Deduplicate(items []NormalizedItem, taxonomy Taxonomy) []Article {
	d := NewDeduplicator(taxonomy)
	for _, it := range items {
		d.Add(it)
	}
	return d.Articles()
}

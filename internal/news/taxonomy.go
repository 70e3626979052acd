package news

import (
	"fmt"
	"strings"
)

// OtherCategory is assigned when no taxonomy keyword matches.
const OtherCategory = "other"

// Category is one taxonomy entry.
type Category struct {
	Label    string
	Keywords []string
}

// Taxonomy is an ordered, immutable label → keywords mapping. Keywords are
// stored lower-cased. The zero value has no categories and classifies
// everything as OtherCategory.
type Taxonomy struct {
	categories []Category
}

// NewTaxonomy validates and copies categories.
func NewTaxonomy(categories []Category) (Taxonomy, error) {
	if len(categories) == 0 {
		return Taxonomy{}, &ConfigError{Field: "taxonomy", Err: ErrEmptyTaxonomy}
	}

	seen := make(map[string]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for i, c := range categories {
		label := strings.TrimSpace(c.Label)
		field := fmt.Sprintf("taxonomy[%d]", i)
		if label == "" {
			return Taxonomy{}, &ConfigError{Field: field, Err: ErrEmptyLabel}
		}
		if label == OtherCategory {
			return Taxonomy{}, &ConfigError{Field: field, Err: fmt.Errorf("%w: %q", ErrReservedLabel, label)}
		}
		if _, dup := seen[label]; dup {
			return Taxonomy{}, &ConfigError{Field: field, Err: fmt.Errorf("%w: %q", ErrDuplicateCategory, label)}
		}
		seen[label] = struct{}{}

		keywords := lowerUnique(c.Keywords)
		if len(keywords) == 0 {
			return Taxonomy{}, &ConfigError{Field: field + "." + label, Err: ErrNoKeywords}
		}
		out = append(out, Category{Label: label, Keywords: keywords})
	}
	return Taxonomy{categories: out}, nil
}

// Labels returns category labels in configuration order.
func (t Taxonomy) Labels() []string {
	labels := make([]string, len(t.categories))
	for i, c := range t.categories {
		labels[i] = c.Label
	}
	return labels
}

// Categories returns a copy of the taxonomy entries.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Label: c.Label, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Len is the number of categories.
func (t Taxonomy) Len() int { return len(t.categories) }

// KeywordSet is an immutable list of distinct, lower-cased keywords.
type KeywordSet struct {
	words []string
}

// NewKeywordSet validates and copies words.
func NewKeywordSet(words []string) (KeywordSet, error) {
	w := lowerUnique(words)
	if len(w) == 0 {
		return KeywordSet{}, &ConfigError{Field: "importance_keywords", Err: ErrNoKeywords}
	}
	return KeywordSet{words: w}, nil
}

// Words returns a copy of the keywords.
func (k KeywordSet) Words() []string { return append([]string(nil), k.words...) }

func lowerUnique(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

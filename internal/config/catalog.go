package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deusflow/campusnews/internal/news"
)

// Source kinds understood by the adapter factory.
const (
	KindRSS   = "rss"
	KindGNews = "gnews"
	KindNaver = "naver"
)

var (
	errNoSources     = errors.New("no enabled sources")
	errUnknownKind   = errors.New("unknown source kind")
	errDuplicateName = errors.New("duplicate source name")
	errMissingField  = errors.New("missing field")
)

// CatalogFile is the YAML layout:
//
//	sources:
//	  - name: 연합뉴스 교육
//	    kind: rss
//	    target: https://...
//	taxonomy:
//	  - label: 입시
//	    keywords: [입시, 수시]
//	importance_keywords: [총장, 교육부]
type CatalogFile struct {
	Sources            []SourceEntry   `yaml:"sources"`
	Taxonomy           []CategoryEntry `yaml:"taxonomy"`
	ImportanceKeywords []string        `yaml:"importance_keywords"`
}

type SourceEntry struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	Target      string   `yaml:"target"`
	TimeLayouts []string `yaml:"time_layouts"`
	Enabled     *bool    `yaml:"enabled"` // default true
}

type CategoryEntry struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Catalog is the validated, immutable form of CatalogFile.
type Catalog struct {
	Sources    []news.Descriptor
	Disabled   []news.Descriptor
	Taxonomy   news.Taxonomy
	Importance news.KeywordSet
}

// LoadCatalog reads and validates the catalog at path.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &news.ConfigError{Field: "catalog", Err: err}
	}
	defer f.Close()

	return ParseCatalog(f)
}

// ParseCatalog decodes and validates a catalog. All failures are *news.ConfigError.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var file CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &news.ConfigError{Field: "catalog", Err: err}
	}
	return file.Build()
}

// Build validates f and converts it into a Catalog.
func (f CatalogFile) Build() (*Catalog, error) {
	categories := make([]news.Category, len(f.Taxonomy))
	for i, c := range f.Taxonomy {
		categories[i] = news.Category{Label: c.Label, Keywords: c.Keywords}
	}
	taxonomy, err := news.NewTaxonomy(categories)
	if err != nil {
		return nil, err
	}

	importance, err := news.NewKeywordSet(f.ImportanceKeywords)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{Taxonomy: taxonomy, Importance: importance}
	names := make(map[string]struct{}, len(f.Sources))
	for i, s := range f.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		d, err := s.descriptor()
		if err != nil {
			return nil, &news.ConfigError{Field: field, Err: err}
		}
		if _, dup := names[d.Name]; dup {
			return nil, &news.ConfigError{Field: field, Err: fmt.Errorf("%w: %q", errDuplicateName, d.Name)}
		}
		names[d.Name] = struct{}{}

		if s.Enabled != nil && !*s.Enabled {
			cat.Disabled = append(cat.Disabled, d)
			continue
		}
		cat.Sources = append(cat.Sources, d)
	}
	if len(cat.Sources) == 0 {
		return nil, &news.ConfigError{Field: "sources", Err: errNoSources}
	}
	return cat, nil
}

func (s SourceEntry) descriptor() (news.Descriptor, error) {
	d := news.Descriptor{
		Name:        strings.TrimSpace(s.Name),
		Kind:        strings.ToLower(strings.TrimSpace(s.Kind)),
		Target:      strings.TrimSpace(s.Target),
		TimeLayouts: append([]string(nil), s.TimeLayouts...),
	}
	switch {
	case d.Name == "":
		return d, fmt.Errorf("%w: name", errMissingField)
	case d.Target == "":
		return d, fmt.Errorf("%w: target", errMissingField)
	}
	switch d.Kind {
	case KindRSS, KindGNews, KindNaver:
	default:
		return d, fmt.Errorf("%w: %q", errUnknownKind, s.Kind)
	}
	return d, nil
}

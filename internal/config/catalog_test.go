package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/campusnews/internal/news"
)

const validCatalog = `
sources:
  - name: feed
    kind: RSS
    target: https://example.com/rss
    time_layouts: ["2006-01-02"]
  - name: search
    kind: naver
    target: 대학
    enabled: false
  - name: google
    kind: gnews
    target: 총장
taxonomy:
  - label: 입시
    keywords: [수시, 정시]
  - label: 대학정책/행정
    keywords: [총장]
importance_keywords: [총장]
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog(strings.NewReader(validCatalog))
	require.NoError(t, err)

	require.Len(t, cat.Sources, 2)
	assert.Equal(t, news.Descriptor{Name: "feed", Kind: KindRSS, Target: "https://example.com/rss", TimeLayouts: []string{"2006-01-02"}}, cat.Sources[0])
	assert.Equal(t, "google", cat.Sources[1].Name)
	require.Len(t, cat.Disabled, 1)
	assert.Equal(t, "search", cat.Disabled[0].Name)
	assert.Equal(t, []string{"입시", "대학정책/행정"}, cat.Taxonomy.Labels())
	assert.Equal(t, []string{"총장"}, cat.Importance.Words())
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "empty taxonomy",
			yaml:    "sources: [{name: a, kind: rss, target: x}]\nimportance_keywords: [a]\n",
			wantErr: news.ErrEmptyTaxonomy,
		},
		{
			name:    "no importance keywords",
			yaml:    "sources: [{name: a, kind: rss, target: x}]\ntaxonomy: [{label: a, keywords: [b]}]\n",
			wantErr: news.ErrNoKeywords,
		},
		{
			name:    "unknown kind",
			yaml:    "sources: [{name: a, kind: ftp, target: x}]\ntaxonomy: [{label: a, keywords: [b]}]\nimportance_keywords: [a]\n",
			wantErr: errUnknownKind,
		},
		{
			name:    "duplicate name",
			yaml:    "sources: [{name: a, kind: rss, target: x}, {name: a, kind: rss, target: y}]\ntaxonomy: [{label: a, keywords: [b]}]\nimportance_keywords: [a]\n",
			wantErr: errDuplicateName,
		},
		{
			name:    "all disabled",
			yaml:    "sources: [{name: a, kind: rss, target: x, enabled: false}]\ntaxonomy: [{label: a, keywords: [b]}]\nimportance_keywords: [a]\n",
			wantErr: errNoSources,
		},
		{
			name:    "missing target",
			yaml:    "sources: [{name: a, kind: rss}]\ntaxonomy: [{label: a, keywords: [b]}]\nimportance_keywords: [a]\n",
			wantErr: errMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.True(t, news.IsConfigError(err))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("feeds: [a]\n"))
	require.Error(t, err)
	assert.True(t, news.IsConfigError(err))
}

func TestLoadCatalogShipped(t *testing.T) {
	cat, err := LoadCatalog("../../configs/catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, 8, cat.Taxonomy.Len())
	assert.NotEmpty(t, cat.Sources)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog("does-not-exist.yaml")
	assert.True(t, news.IsConfigError(err))
}

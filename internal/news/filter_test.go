package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func TestParseWindow(t *testing.T) {
	for in, want := range map[string]Window{"": WindowAll, "all": WindowAll, "24h": WindowLast24h, "LAST24H": WindowLast24h} {
		got, err := ParseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWindow("7d")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestQuerySpecValidate(t *testing.T) {
	assert.NoError(t, QuerySpec{}.Validate())
	assert.NoError(t, QuerySpec{Window: WindowLast24h, TopN: 5}.Validate())
	assert.ErrorIs(t, QuerySpec{TopN: -1}.Validate(), ErrInvalidQuery)
	assert.ErrorIs(t, QuerySpec{Window: "week"}.Validate(), ErrInvalidQuery)
}

func TestFilterTimeWindow(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, kst)
	articles := []Article{
		{Title: "recent", PublishedAt: at(now.Add(-time.Hour))},
		{Title: "edge", PublishedAt: at(now.Add(-24 * time.Hour))},
		{Title: "old", PublishedAt: at(now.Add(-25 * time.Hour))},
		{Title: "unknown"},
	}

	assert.Equal(t, []string{"recent", "edge"}, titles(Filter(articles, QuerySpec{Window: WindowLast24h}, now)))
	assert.Equal(t, []string{"recent", "edge", "old", "unknown"}, titles(Filter(articles, QuerySpec{Window: WindowAll}, now)))
}

func TestFilterQueryAndCategory(t *testing.T) {
	now := time.Now()
	articles := []Article{
		{Title: "서울대 총장 선출", Categories: []string{"대학정책/행정"}},
		{Title: "수시 모집", Summary: "서울대 입학처 발표", Categories: []string{"입시"}},
		{Title: "AI 연구", Categories: []string{"연구/학술"}},
	}

	assert.Equal(t, []string{"서울대 총장 선출", "수시 모집"}, titles(Filter(articles, QuerySpec{Query: "서울대"}, now)))
	assert.Equal(t, []string{"AI 연구"}, titles(Filter(articles, QuerySpec{Query: "ai"}, now)))
	assert.Equal(t, []string{"수시 모집"}, titles(Filter(articles, QuerySpec{Query: "서울대", Category: "입시"}, now)))
	assert.Empty(t, Filter(articles, QuerySpec{Category: "국제교류"}, now))
}

package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankDefaultNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, kst)
	articles := []Article{
		{Title: "u1"},
		{Title: "old", PublishedAt: at(base)},
		{Title: "u2"},
		{Title: "new", PublishedAt: at(base.Add(time.Hour))},
	}

	assert.Equal(t, []string{"new", "old", "u1", "u2"}, titles(Rank(articles, QuerySpec{})))
	assert.Equal(t, "u1", articles[0].Title, "input must not be reordered")
}

func TestRankIsStable(t *testing.T) {
	same := time.Date(2024, 3, 1, 9, 0, 0, 0, kst)
	articles := []Article{
		{Title: "first", PublishedAt: at(same)},
		{Title: "second", PublishedAt: at(same)},
		{Title: "third", PublishedAt: at(same)},
	}

	assert.Equal(t, []string{"first", "second", "third"}, titles(Rank(articles, QuerySpec{})))
}

func TestRankTopN(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, kst)
	articles := []Article{
		{Title: "a", ImportanceScore: 1, PublishedAt: at(base)},
		{Title: "b", ImportanceScore: 3},
		{Title: "c", ImportanceScore: 3, PublishedAt: at(base)},
		{Title: "d", ImportanceScore: 0, PublishedAt: at(base.Add(time.Hour))},
		{Title: "e", ImportanceScore: 2, PublishedAt: at(base)},
		{Title: "f", ImportanceScore: 1, PublishedAt: at(base.Add(time.Hour))},
		{Title: "g", ImportanceScore: 5},
	}

	got := Rank(articles, QuerySpec{TopN: 5})
	require.Len(t, got, 5)
	assert.Equal(t, []string{"g", "c", "b", "e", "f"}, titles(got))

	minIncluded := got[len(got)-1].ImportanceScore
	for _, a := range articles {
		included := false
		for _, g := range got {
			if g.Title == a.Title {
				included = true
			}
		}
		if !included {
			assert.LessOrEqual(t, a.ImportanceScore, minIncluded)
		}
	}
}

func TestRankTopNLargerThanInput(t *testing.T) {
	got := Rank([]Article{{Title: "a"}, {Title: "b"}}, QuerySpec{TopN: 6})
	assert.Len(t, got, 2)
}

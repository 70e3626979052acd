package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

func testTaxonomy(t *testing.T) Taxonomy {
	t.Helper()
	tax, err := NewTaxonomy([]Category{
		{Label: "입시", Keywords: []string{"입시", "수시", "정시"}},
		{Label: "교육/수업", Keywords: []string{"교육", "수업", "강의"}},
		{Label: "연구/학술", Keywords: []string{"연구", "논문"}},
		{Label: "대학정책/행정", Keywords: []string{"정책", "총장", "등록금"}},
	})
	require.NoError(t, err)
	return tax
}

func testKeywords(t *testing.T) KeywordSet {
	t.Helper()
	k, err := NewKeywordSet([]string{"총장", "교육부", "발표", "AI"})
	require.NoError(t, err)
	return k
}

func at(t time.Time) *time.Time { return &t }

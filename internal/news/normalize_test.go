package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "  서울대   총장\n선출 ", want: "서울대 총장 선출"},
		{name: "tags", in: "<p><b>서울대</b> 총장</p>", want: "서울대 총장"},
		{name: "entities", in: "AT&amp;T &quot;발표&quot;", want: `AT&T "발표"`},
		{name: "script removed", in: "<div>본문<script>alert(1)</script></div>", want: "본문"},
		{name: "double escaped", in: "&amp;quot;인용&amp;quot;", want: `"인용"`},
		{name: "bare less-than before letter", in: "Samsung<LG 협약 체결", want: "Samsung<LG 협약 체결"},
		{name: "bare less-than short", in: "a<b 학교", want: "a<b 학교"},
		{name: "comparison", in: "1 < 2 그리고 3>2", want: "1 < 2 그리고 3>2"},
		{name: "bare ampersand", in: "AT&T 협약", want: "AT&T 협약"},
		{name: "escaped brackets", in: "&lt;속보&gt; 서울대", want: "<속보> 서울대"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCanonicalLink(t *testing.T) {
	want := "example.com/news/1?a=1&b=2"

	for _, in := range []string{
		"https://example.com/news/1?b=2&a=1",
		"http://www.Example.com/news/1/?a=1&b=2#comments",
		"https://example.com:443/news/1?a=1&b=2&utm_source=rss&fbclid=xyz",
	} {
		assert.Equal(t, want, CanonicalLink(in), in)
	}

	assert.Equal(t, "", CanonicalLink("   "))
}

func TestIdentityKey(t *testing.T) {
	byLink := IdentityKey("https://example.com/a", "제목 하나")
	assert.Equal(t, byLink, IdentityKey("http://www.example.com/a/", "다른 제목"))
	assert.Len(t, byLink, 40)

	byTitle := IdentityKey("", "서울대  총장 선출")
	assert.Equal(t, byTitle, IdentityKey(" ", "서울대 총장 선출"))
	assert.NotEqual(t, byLink, byTitle)
}

func TestParseTimestamp(t *testing.T) {
	n := NewNormalizer(kst)

	tests := []struct {
		name  string
		value string
		extra []string
		want  time.Time
	}{
		{name: "rfc1123z", value: "Fri, 01 Mar 2024 09:30:00 +0900", want: time.Date(2024, 3, 1, 9, 30, 0, 0, kst)},
		{name: "rfc3339", value: "2024-03-01T00:30:00Z", want: time.Date(2024, 3, 1, 9, 30, 0, 0, kst)},
		{name: "zone-less uses location", value: "2024-03-01 09:30", want: time.Date(2024, 3, 1, 9, 30, 0, 0, kst)},
		{name: "dotted date", value: "2024.03.01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, kst)},
		{name: "descriptor layout", value: "01/03/2024 09:30", extra: []string{"02/01/2006 15:04"}, want: time.Date(2024, 3, 1, 9, 30, 0, 0, kst)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.ParseTimestamp(tt.value, tt.extra)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v", got)
		})
	}
}

func TestParseTimestampUnknown(t *testing.T) {
	n := NewNormalizer(nil)

	got, err := n.ParseTimestamp("  ", nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = n.ParseTimestamp("어제 오후", nil)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(kst)

	item, err := n.Normalize(RawItem{
		Title:        "<b>서울대</b> 총장 선출",
		SummaryHTML:  "<p>이사회가&nbsp;선출했다</p>",
		Link:         " https://news.example.com/1 ",
		SourceName:   "A",
		PublishedRaw: "2024-03-01 09:30",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "서울대 총장 선출", item.Title)
	assert.Equal(t, "이사회가 선출했다", item.Summary)
	assert.Equal(t, "https://news.example.com/1", item.Link)
	assert.Equal(t, IdentityKey("https://news.example.com/1", ""), item.IdentityKey)
	assert.Equal(t, "A", item.SourceName)
	require.NotNil(t, item.PublishedAt)
}

func TestNormalizeDegradesBadTimestamp(t *testing.T) {
	item, err := NewNormalizer(kst).Normalize(RawItem{Title: "제목", PublishedRaw: "bogus"}, nil)

	assert.True(t, IsParseError(err))
	assert.Equal(t, "제목", item.Title)
	assert.Nil(t, item.PublishedAt)
	assert.NotEmpty(t, item.IdentityKey)
}

func TestNormalizeUnidentifiable(t *testing.T) {
	_, err := NewNormalizer(kst).Normalize(RawItem{Title: "<br/>", SummaryHTML: "본문"}, nil)
	assert.ErrorIs(t, err, ErrUnidentifiable)
}

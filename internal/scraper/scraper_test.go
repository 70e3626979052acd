package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/campusnews/internal/news"
	"github.com/deusflow/campusnews/internal/retry"
)

var fastRetry = retry.RetryConfig{MaxAttempts: 2, Delay: time.Millisecond}

const articlePage = `<html><head><title>t</title><script>var x = "무시";</script></head>
<body>
<div id="article-view-content-div">
  <p>교육부는 19일 2027학년도 대학 입시 기본계획을 발표했다.</p>
  <p>짧음</p>
  <p>수시 모집 비율은 전년과 비슷한 수준으로 유지된다.</p>
  <p>저작권자 © 한국대학신문 무단전재 및 재배포 금지</p>
</div>
<div class="sidebar"><p>많이 본 뉴스 목록이 여기에 표시됩니다.</p></div>
</body></html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgentBrowser, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	body, err := New(srv.Client(), fastRetry).Extract(context.Background(), srv.URL+"/news/1")
	require.NoError(t, err)
	assert.Equal(t,
		"교육부는 19일 2027학년도 대학 입시 기본계획을 발표했다.\n\n수시 모집 비율은 전년과 비슷한 수준으로 유지된다.",
		body)
}

func TestExtractNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div>nothing here</div></body></html>`))
	}))
	defer srv.Close()

	_, err := New(srv.Client(), fastRetry).Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.Client(), fastRetry).Extract(context.Background(), srv.URL)
	assert.ErrorIs(t, err, news.ErrBadStatus)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestExtractInvalidLink(t *testing.T) {
	for _, link := range []string{"", "not a url", "ftp://example.com/a"} {
		_, err := New(nil, fastRetry).Extract(context.Background(), link)
		assert.Error(t, err, link)
	}
}

func TestCleanBodyKeepsWholeParagraphs(t *testing.T) {
	p := strings.Repeat("가", 20)
	got := cleanBody([]string{p, p, p}, 45)
	assert.Equal(t, p+"\n\n"+p, got)
}

func TestCleanBodyFirstParagraphAlwaysKept(t *testing.T) {
	p := strings.Repeat("가", 50)
	assert.Equal(t, p, cleanBody([]string{p}, 10))
}

func TestExtractParagraphsSiteSelectors(t *testing.T) {
	doc := mustDoc(t, `<div id="dic_area">네이버 본문 첫 줄입니다.<br>둘째 줄도 충분히 깁니다.<br/><br>`+
		`저작권자 © 연합뉴스 무단전재 및 재배포 금지</div><article><p>일반 선택자 문단입니다.</p></article>`)

	got := extractParagraphs(doc, "n.news.naver.com")
	assert.Equal(t, []string{
		"네이버 본문 첫 줄입니다.",
		"둘째 줄도 충분히 깁니다.",
		"저작권자 © 연합뉴스 무단전재 및 재배포 금지",
	}, got)
	assert.Equal(t, "네이버 본문 첫 줄입니다.\n\n둘째 줄도 충분히 깁니다.", cleanBody(got, defaultMaxRunes))
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

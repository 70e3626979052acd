package app

import (
	"context"
	"sync/atomic"

	"github.com/deusflow/campusnews/internal/news"
)

// mockAdapter is a func-field news.Adapter.
type mockAdapter struct {
	FetchFn func(ctx context.Context, d news.Descriptor) ([]news.RawItem, error)
	calls   int32
}

func (m *mockAdapter) Fetch(ctx context.Context, d news.Descriptor) ([]news.RawItem, error) {
	atomic.AddInt32(&m.calls, 1)
	return m.FetchFn(ctx, d)
}

func (m *mockAdapter) Calls() int { return int(atomic.LoadInt32(&m.calls)) }

func itemsAdapter(items ...news.RawItem) *mockAdapter {
	return &mockAdapter{FetchFn: func(context.Context, news.Descriptor) ([]news.RawItem, error) {
		return items, nil
	}}
}

func failingAdapter(err error) *mockAdapter {
	return &mockAdapter{FetchFn: func(context.Context, news.Descriptor) ([]news.RawItem, error) {
		return nil, err
	}}
}

func source(name string, a news.Adapter) news.Source {
	return news.Source{Descriptor: news.Descriptor{Name: name, Kind: "rss", Target: "https://example.com/" + name}, Adapter: a}
}

// mockSummarizer is a func-field summarize.Summarizer.
type mockSummarizer struct {
	SummarizeFn func(ctx context.Context, text string, maxSentences int) (string, error)
}

func (m *mockSummarizer) Name() string { return "mock" }

func (m *mockSummarizer) Summarize(ctx context.Context, text string, maxSentences int) (string, error) {
	return m.SummarizeFn(ctx, text, maxSentences)
}

// mockExtractor is a func-field BodyExtractor.
type mockExtractor struct {
	ExtractFn func(ctx context.Context, link string) (string, error)
}

func (m *mockExtractor) Extract(ctx context.Context, link string) (string, error) {
	return m.ExtractFn(ctx, link)
}

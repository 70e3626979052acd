package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/news"
)

// Aggregator fetches every source concurrently and returns their batches in
// configuration order.
type Aggregator struct {
	sources        []news.Source
	maxConcurrency int
	sourceTimeout  time.Duration
}

// NewAggregator bounds parallel fetches by maxConcurrency and each fetch by sourceTimeout.
func NewAggregator(sources []news.Source, maxConcurrency int, sourceTimeout time.Duration) *Aggregator {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if sourceTimeout <= 0 {
		sourceTimeout = 10 * time.Second
	}
	return &Aggregator{
		sources:        append([]news.Source(nil), sources...),
		maxConcurrency: maxConcurrency,
		sourceTimeout:  sourceTimeout,
	}
}

// Sources returns the configured descriptors in order.
func (a *Aggregator) Sources() []news.Descriptor {
	out := make([]news.Descriptor, len(a.sources))
	for i, s := range a.sources {
		out[i] = s.Descriptor
	}
	return out
}

type fetchResult struct {
	items []news.RawItem
	err   error
}

// Collect runs every adapter and waits for each to finish, fail or time out.
// A failed source contributes no batch and one FetchError; Collect itself
// never fails. Each task writes only its own slot.
func (a *Aggregator) Collect(ctx context.Context) ([]news.Batch, []*news.FetchError) {
	slots := make([]fetchResult, len(a.sources))
	sem := make(chan struct{}, a.maxConcurrency)
	var wg sync.WaitGroup

	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src news.Source) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				slots[i] = fetchResult{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			items, err := a.fetchOne(ctx, src)
			slots[i] = fetchResult{items: items, err: err}
		}(i, src)
	}
	wg.Wait()

	var batches []news.Batch
	var failures []*news.FetchError
	for i, src := range a.sources {
		if err := slots[i].err; err != nil {
			fe := news.NewFetchError(src.Name, err)
			logger.Warn("Source failed", "source", src.Name, "kind", fe.Kind, "error", fe.Err)
			failures = append(failures, fe)
			continue
		}
		batches = append(batches, news.Batch{Descriptor: src.Descriptor, Items: slots[i].items})
	}
	return batches, failures
}

// fetchOne returns when the adapter does or when the source deadline passes,
// whichever comes first. An adapter ignoring its context is abandoned.
func (a *Aggregator) fetchOne(ctx context.Context, src news.Source) ([]news.RawItem, error) {
	if src.Adapter == nil {
		return nil, fmt.Errorf("no adapter for kind %q", src.Kind)
	}

	ctx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("adapter panic: %v", r)}
			}
		}()
		items, err := src.Adapter.Fetch(ctx, src.Descriptor)
		done <- fetchResult{items: items, err: err}
	}()

	select {
	case r := <-done:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

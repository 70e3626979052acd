package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	Runs                int64
	ItemsFetched        int64
	ArticlesBuilt       int64
	DuplicatesMerged    int64
	FailedSources       int64
	ParseFailures       int64
	SuccessfulSummaries int64
	FailedSummaries     int64
	CacheHits           int64
	CacheMisses         int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

// RunStats is what one corpus build reports.
type RunStats struct {
	Items         int
	Articles      int
	Merged        int
	FailedSources int
	ParseFailures int
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

// RecordRun adds one build's counts and marks the service healthy unless
// every source failed.
func (m *Metrics) RecordRun(s RunStats, sources int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Runs++
	m.ItemsFetched += int64(s.Items)
	m.ArticlesBuilt += int64(s.Articles)
	m.DuplicatesMerged += int64(s.Merged)
	m.FailedSources += int64(s.FailedSources)
	m.ParseFailures += int64(s.ParseFailures)
	m.LastRunTime = time.Now()

	if sources > 0 && s.FailedSources >= sources {
		m.LastError = "all sources failed"
		m.LastErrorTime = m.LastRunTime
		m.IsHealthy = false
		return
	}
	m.IsHealthy = true
}

func (m *Metrics) IncrementSummaries(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.SuccessfulSummaries++
	} else {
		m.FailedSummaries++
	}
}

func (m *Metrics) IncrementCache(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"runs":                       m.Runs,
		"items_fetched":              m.ItemsFetched,
		"articles_built":             m.ArticlesBuilt,
		"duplicates_merged":          m.DuplicatesMerged,
		"failed_sources":             m.FailedSources,
		"parse_failures":             m.ParseFailures,
		"successful_summaries":       m.SuccessfulSummaries,
		"failed_summaries":           m.FailedSummaries,
		"cache_hits":                 m.CacheHits,
		"cache_misses":               m.CacheMisses,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}

// Package ratelimit caps daily calls to paid summarization providers.
package ratelimit

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/campusnews/internal/logger"
)

// ErrExhausted is returned by Use when a provider or the total quota is spent.
var ErrExhausted = errors.New("rate limit exceeded")

// Budget counts calls per provider and in total, resetting every 24 hours.
// A limit of zero means unlimited.
type Budget struct {
	mu        sync.Mutex
	limits    map[string]int
	used      map[string]int
	maxTotal  int
	total     int
	resetTime time.Time
	now       func() time.Time
}

// NewBudget returns a Budget with per-provider limits and an overall cap.
func NewBudget(limits map[string]int, maxTotal int) *Budget {
	return newBudget(limits, maxTotal, time.Now)
}

func newBudget(limits map[string]int, maxTotal int, now func() time.Time) *Budget {
	l := make(map[string]int, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &Budget{
		limits:    l,
		used:      make(map[string]int),
		maxTotal:  maxTotal,
		resetTime: now().Add(24 * time.Hour),
		now:       now,
	}
}

// Use consumes one call for provider.
func (b *Budget) Use(provider string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if err := b.check(provider); err != nil {
		return err
	}
	b.used[provider]++
	b.total++

	logger.Debug("Summary budget used", "provider", provider,
		"used", b.used[provider], "limit", b.limits[provider], "total", b.total, "max_total", b.maxTotal)
	return nil
}

// GetStats returns usage per provider.
func (b *Budget) GetStats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := map[string]interface{}{
		"total_used":  b.total,
		"total_limit": b.maxTotal,
		"reset_time":  b.resetTime.Format(time.RFC3339),
	}
	for p, limit := range b.limits {
		stats[p+"_used"] = b.used[p]
		stats[p+"_limit"] = limit
	}
	return stats
}

func (b *Budget) check(provider string) error {
	if limit := b.limits[provider]; limit > 0 && b.used[provider] >= limit {
		return fmt.Errorf("%s %w (%d/%d)", provider, ErrExhausted, b.used[provider], limit)
	}
	if b.maxTotal > 0 && b.total >= b.maxTotal {
		return fmt.Errorf("total %w (%d/%d)", ErrExhausted, b.total, b.maxTotal)
	}
	return nil
}

// checkReset clears counters once the reset time has passed. Callers hold mu.
func (b *Budget) checkReset() {
	now := b.now()
	if now.Before(b.resetTime) {
		return
	}
	logger.Info("Resetting summary budget", "total_used", b.total)
	b.used = make(map[string]int)
	b.total = 0
	b.resetTime = now.Add(24 * time.Hour)
}

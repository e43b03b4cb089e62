package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
)

// MemoryScheduleCache is an in-process schedule cache bounded by the total
// number of cached rows.
type MemoryScheduleCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewMemoryScheduleCache creates a cache holding at most maxRows rows.
func NewMemoryScheduleCache(maxRows int64, ttl time.Duration) (*MemoryScheduleCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxRows * 10,
		MaxCost:     maxRows,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &MemoryScheduleCache{cache: c, ttl: ttl}, nil
}

// Get implements port.ScheduleCache.
func (c *MemoryScheduleCache) Get(_ context.Context, key string) ([]model.AmortizationRow, bool, error) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	rows, ok := v.([]model.AmortizationRow)
	if !ok {
		return nil, false, fmt.Errorf("cached value for %s has type %T", key, v)
	}
	out := make([]model.AmortizationRow, len(rows))
	copy(out, rows)
	return out, true, nil
}

// Set implements port.ScheduleCache. Admission is best effort: ristretto
// may drop a write under contention.
func (c *MemoryScheduleCache) Set(_ context.Context, key string, rows []model.AmortizationRow) error {
	stored := make([]model.AmortizationRow, len(rows))
	copy(stored, rows)
	cost := int64(len(stored))
	if cost == 0 {
		cost = 1
	}
	c.cache.SetWithTTL(key, stored, cost, c.ttl)
	return nil
}

// Wait blocks until buffered writes have been applied.
func (c *MemoryScheduleCache) Wait() { c.cache.Wait() }

// Close releases the cache's background goroutines.
func (c *MemoryScheduleCache) Close() { c.cache.Close() }

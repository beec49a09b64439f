package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/terracart/terracart/internal/impact/timeline"
)

// constError is an immutable error type for cache sentinels.
type constError string

func (e constError) Error() string { return string(e) }

// Cache sentinel errors, comparable with errors.Is().
var (
	// ErrCacheMiss indicates no entry, or an expired one.
	ErrCacheMiss = constError("report cache miss")
)

// Cache stores assembled reports keyed by (user, timeframe) with a TTL.
// Entries that are stale but unexpired may be served; callers must not
// assume strict consistency with in-flight orders. A new order event for a
// user eagerly drops every timeframe entry for that user.
type Cache interface {
	Get(ctx context.Context, userID string, tf timeline.Timeframe) (*Report, error)
	Set(ctx context.Context, rep *Report) error
	InvalidateUser(ctx context.Context, userID string) error
}

// cacheKey builds the canonical cache key for a user and timeframe.
func cacheKey(userID string, tf timeline.Timeframe) string {
	return fmt.Sprintf("impact:report:%s:%s", userID, tf)
}

// memoryEntry is one cached report with its expiry.
type memoryEntry struct {
	report    *Report
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with TTL expiration. Thread-safe.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached report or ErrCacheMiss. Expired entries are
// removed lazily on the next write to their key.
func (c *MemoryCache) Get(_ context.Context, userID string, tf timeline.Timeframe) (*Report, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(userID, tf)]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, ErrCacheMiss
	}
	return entry.report, nil
}

// Set stores a report under its (user, timeframe) key.
func (c *MemoryCache) Set(_ context.Context, rep *Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(rep.UserID, rep.Timeframe)] = memoryEntry{
		report:    rep,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// InvalidateUser drops every timeframe entry for the user. Idempotent.
func (c *MemoryCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tf := range timeline.Timeframes() {
		delete(c.entries, cacheKey(userID, tf))
	}
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"phishshield/internal/urlrisk"
	"phishshield/pkg/platform/sentinel"
)

// DefaultMaxEntries bounds the in-memory cache when no size is given.
const DefaultMaxEntries = 10_000

type cachedAnalysis struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryCache keeps encoded analyses in process memory with a TTL.
// Entries are stored encoded so callers never share mutable state.
type InMemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]cachedAnalysis
	maxEntries int
	now        func() time.Time
}

// NewInMemoryCache creates a cache holding at most maxEntries analyses.
func NewInMemoryCache(maxEntries int) *InMemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &InMemoryCache{
		entries:    make(map[string]cachedAnalysis),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (*urlrisk.Analysis, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, sentinel.ErrNotFound
	}

	var analysis urlrisk.Analysis
	if err := json.Unmarshal(entry.payload, &analysis); err != nil {
		return nil, fmt.Errorf("decode cached analysis: %w", err)
	}
	return &analysis, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, analysis *urlrisk.Analysis, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cachedAnalysis{payload: payload, expiresAt: now.Add(ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops expired entries, or the entry closest to expiry when
// none have expired. Must be called with c.mu held.
func (c *InMemoryCache) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	removed := false
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed = true
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, entry.expiresAt
		}
	}
	if !removed && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

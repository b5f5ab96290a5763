package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"offer_summary_backend/internal/offersummary"
)

// MemoryCache is a bounded in-process LRU cache with per-entry expiry.
type MemoryCache struct {
	lru *expirable.LRU[string, *offersummary.OfferSummary]
}

// NewMemoryCache creates a cache holding at most size summaries for ttl each.
// A non-positive ttl keeps entries until they are evicted.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size < 1 {
		size = 1
	}
	return &MemoryCache{lru: expirable.NewLRU[string, *offersummary.OfferSummary](size, nil, ttl)}
}

// Get returns the cached summary for fingerprint.
func (c *MemoryCache) Get(_ context.Context, fingerprint string) (*offersummary.OfferSummary, bool, error) {
	summary, ok := c.lru.Get(fingerprint)
	return summary, ok, nil
}

// Set stores summary, evicting the least recently used entry when full.
func (c *MemoryCache) Set(_ context.Context, fingerprint string, summary *offersummary.OfferSummary) error {
	c.lru.Add(fingerprint, summary)
	return nil
}

// Len returns the number of cached entries, expired ones not yet purged included.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

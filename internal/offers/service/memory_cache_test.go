package service

import (
	"context"
	"testing"
	"time"

	"offer_summary_backend/internal/offersummary"
)

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, 0)

	_ = cache.Set(ctx, "a", &offersummary.OfferSummary{OfferCode: "A"})
	_ = cache.Set(ctx, "b", &offersummary.OfferSummary{OfferCode: "B"})
	if _, ok, _ := cache.Get(ctx, "a"); !ok {
		t.Fatal("expected a to be cached")
	}
	_ = cache.Set(ctx, "c", &offersummary.OfferSummary{OfferCode: "C"})

	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if got, ok, _ := cache.Get(ctx, "a"); !ok || got.OfferCode != "A" {
		t.Fatalf("expected a to survive, got %+v", got)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
}

func TestMemoryCache_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(4, 50*time.Millisecond)

	_ = cache.Set(ctx, "a", &offersummary.OfferSummary{OfferCode: "A"})
	if _, ok, _ := cache.Get(ctx, "a"); !ok {
		t.Fatal("expected fresh entry")
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Fatal("expected expired entry to be dropped")
	}
}

func TestMemoryCache_ClampsSize(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)

	_ = cache.Set(ctx, "a", &offersummary.OfferSummary{OfferCode: "A"})
	_ = cache.Set(ctx, "b", &offersummary.OfferSummary{OfferCode: "B"})

	if cache.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", cache.Len())
	}
	if got, ok, _ := cache.Get(ctx, "b"); !ok || got.OfferCode != "B" {
		t.Fatalf("expected newest entry to survive, got %+v", got)
	}
}

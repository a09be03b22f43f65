package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bojo24/contentforge/internal/model"
)

// CachedRecords is a read-through cache in front of a RecordStore. Batch
// runs touch the same record once per content type; the cache keeps that
// at one database read per record.
type CachedRecords struct {
	inner RecordStore
	cache *gocache.Cache
}

// NewCachedRecords wraps a record store with a TTL cache. Misses and
// errors are never cached.
func NewCachedRecords(inner RecordStore, ttl time.Duration) *CachedRecords {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedRecords{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedRecords) Record(ctx context.Context, id string) (model.BenefitRecord, error) {
	if cached, ok := c.cache.Get(id); ok {
		return cached.(model.BenefitRecord), nil
	}
	rec, err := c.inner.Record(ctx, id)
	if err != nil {
		return model.BenefitRecord{}, err
	}
	c.cache.SetDefault(id, rec)
	return rec, nil
}

// RecordIDs passes through; listings are not cached.
func (c *CachedRecords) RecordIDs(ctx context.Context, limit int) ([]string, error) {
	return c.inner.RecordIDs(ctx, limit)
}

package cache

import (
	"strings"
	"time"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// Store is the backing storage for catalog records, keyed by document type.
type Store interface {
	Get(key string) (model.CacheRecord, bool)
	Set(key string, rec model.CacheRecord) error
	Delete(key string) error
	Clear() error
}

// Key normalizes a document type into a storage key.
func Key(docType string) string {
	return "codelist:" + strings.ToLower(strings.TrimSpace(docType))
}

// CatalogCache holds the most recently fetched catalog per document type with
// a time-to-live. It is explicit injected state: callers own the instance and
// pass it to the pipeline, so concurrent sessions and tests do not interfere.
// Refetch races are tolerable: both racers write a fresh snapshot and the
// last writer wins.
type CatalogCache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New creates a catalog cache over the given store.
func New(store Store, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached catalog for a document type. A record is a hit only
// while now - fetchedAt < TTL; stale records are treated as misses.
func (c *CatalogCache) Get(docType string) (model.Catalog, bool) {
	rec, ok := c.store.Get(Key(docType))
	if !ok {
		return nil, false
	}
	if c.now().Sub(rec.FetchedAt) >= c.ttl {
		return nil, false
	}
	return rec.Entries, true
}

// Put replaces any existing record for the document type unconditionally.
func (c *CatalogCache) Put(docType string, catalog model.Catalog, fetchedAt time.Time) {
	_ = c.store.Set(Key(docType), model.CacheRecord{Entries: catalog, FetchedAt: fetchedAt})
}

// Invalidate drops the record for a document type.
func (c *CatalogCache) Invalidate(docType string) {
	_ = c.store.Delete(Key(docType))
}

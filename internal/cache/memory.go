package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// MemoryStore keeps catalog records in process memory. Records never expire
// at the store level; freshness is the CatalogCache's TTL check, which keeps
// the clock injectable for tests.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a record from the store.
func (s *MemoryStore) Get(key string) (model.CacheRecord, bool) {
	if val, found := s.cache.Get(key); found {
		return val.(model.CacheRecord), true
	}
	return model.CacheRecord{}, false
}

// Set stores a record, replacing any existing one.
func (s *MemoryStore) Set(key string, rec model.CacheRecord) error {
	s.cache.Set(key, rec, gocache.NoExpiration)
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all records.
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}

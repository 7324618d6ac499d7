package cache

import "github.com/jaehyun-im/kcscbot/internal/model"

// LayeredStore reads from memory first and falls through to disk, promoting
// disk hits into memory. Writes go to both layers; a disk write failure does
// not invalidate the memory copy.
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory-over-disk store rooted at dir.
func NewLayeredStore(dir string) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(),
		disk:   NewDiskStore(dir),
	}
}

// Get retrieves a record, checking memory before disk.
func (s *LayeredStore) Get(key string) (model.CacheRecord, bool) {
	if rec, found := s.memory.Get(key); found {
		return rec, true
	}

	if rec, found := s.disk.Get(key); found {
		_ = s.memory.Set(key, rec)
		return rec, true
	}

	return model.CacheRecord{}, false
}

// Set stores a record in both layers.
func (s *LayeredStore) Set(key string, rec model.CacheRecord) error {
	if err := s.memory.Set(key, rec); err != nil {
		return err
	}
	return s.disk.Set(key, rec)
}

// Delete removes a record from both layers.
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	return s.disk.Delete(key)
}

// Clear removes all records from both layers.
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	return s.disk.Clear()
}

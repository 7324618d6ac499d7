package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// DiskStore persists catalog records as JSON files so a fresh CLI invocation
// can reuse a catalog fetched by an earlier one. Staleness is still decided
// by the CatalogCache TTL check against the record's fetch timestamp.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Get retrieves a record from disk.
func (s *DiskStore) Get(key string) (model.CacheRecord, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return model.CacheRecord{}, false
	}

	var rec model.CacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt snapshot, drop it.
		_ = os.Remove(s.path(key))
		return model.CacheRecord{}, false
	}

	return rec, true
}

// Set stores a record on disk.
func (s *DiskStore) Set(key string, rec model.CacheRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes a record from disk.
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes all cached files.
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path generates the file path for a key.
func (s *DiskStore) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

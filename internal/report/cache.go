package report

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore keeps the most recent records in memory and delegates to a
// backing Store on miss.
type CachedStore struct {
	cache *lru.Cache[string, *Record]
	back  Store
}

// NewCachedStore creates a cache of the given size in front of back.
// Size must be >= 1.
func NewCachedStore(size int, back Store) (*CachedStore, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[string, *Record](size)
	if err != nil {
		return nil, fmt.Errorf("creating record cache: %w", err)
	}
	return &CachedStore{cache: cache, back: back}, nil
}

// Save caches the record and writes it through to the backing store.
func (s *CachedStore) Save(rec *Record) error {
	s.cache.Add(rec.ID, rec)
	return s.back.Save(rec)
}

// Load checks the cache first. On miss, loads from the backing store
// and promotes the record into the cache.
func (s *CachedStore) Load(runID string) (*Record, error) {
	if rec, ok := s.cache.Get(runID); ok {
		return rec, nil
	}
	rec, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(runID, rec)
	return rec, nil
}

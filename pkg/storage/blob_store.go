package storage

import (
	"fmt"
	"time"
)

// Blob is a rendered export kept for later download.
type Blob struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlobStore keeps recent exports in a bounded MemoryCache.
type BlobStore struct {
	cache *MemoryCache
}

func NewBlobStore(maxSize int, ttl time.Duration) *BlobStore {
	return &BlobStore{cache: NewMemoryCacheWithTTL(maxSize, ttl)}
}

func (s *BlobStore) Put(b Blob) error {
	if b.ID == "" {
		return fmt.Errorf("blob without id")
	}
	return s.cache.Set(b.ID, b)
}

func (s *BlobStore) Get(id string) (Blob, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Blob{}, fmt.Errorf("blob %s: %w", id, ErrNotFound)
	}
	return v.(Blob), nil
}

func (s *BlobStore) Stats() CacheStats {
	return s.cache.Stats()
}

func (s *BlobStore) Close() {
	s.cache.Close()
}

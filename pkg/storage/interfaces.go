package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned by typed getters for absent or expired keys.
var ErrNotFound = errors.New("key not found")

// Cache is the key/value surface shared by the metrics cache and the
// export blob store.
type Cache interface {
	Set(key string, value interface{}) error
	Get(key string) (interface{}, bool)
	Delete(key string) error
	Clear() error
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
	Hits    uint64        `json:"hits"`
	Misses  uint64        `json:"misses"`
	Evicted uint64        `json:"evicted"`
}

package persist

import (
	"context"
	"slices"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps values in process memory. Nothing expires.
type MemoryBackend struct {
	cache *cache.Cache
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() (b *MemoryBackend) {
	b = &MemoryBackend{
		cache: cache.New(cache.NoExpiration, 0),
	}
	return b
}

// Get implements Backend.
func (b *MemoryBackend) Get(_ context.Context, key string) (value []byte, err error) {
	x, found := b.cache.Get(key)
	if !found {
		err = ErrNotFound
		return value, err
	}
	stored, ok := x.([]byte)
	if !ok {
		err = ErrNotFound
		return value, err
	}
	value = slices.Clone(stored)
	return value, err
}

// Set implements Backend.
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte) (err error) {
	b.cache.Set(key, slices.Clone(value), cache.NoExpiration)
	return err
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(_ context.Context, key string) (err error) {
	b.cache.Delete(key)
	return err
}

// Keys lists the stored keys in sorted order.
func (b *MemoryBackend) Keys() (keys []string) {
	for key := range b.cache.Items() {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Close implements Backend.
func (b *MemoryBackend) Close() (err error) {
	b.cache.Flush()
	return err
}

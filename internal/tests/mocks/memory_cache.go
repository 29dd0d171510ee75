package mocks

import "context"

// MemoryCache is a map-backed CacheRepository for exercising migration and
// fallback behavior against real store semantics.
type MemoryCache struct {
	Data map[string]string
}

func NewMemoryCache(seed map[string]string) *MemoryCache {
	data := make(map[string]string, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	return &MemoryCache{Data: data}
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := m.Data[key]
	return value, ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key, value string) error {
	m.Data[key] = value
	return nil
}

func (m *MemoryCache) Remove(ctx context.Context, key string) error {
	delete(m.Data, key)
	return nil
}

// Snapshot copies the current store contents.
func (m *MemoryCache) Snapshot() map[string]string {
	out := make(map[string]string, len(m.Data))
	for k, v := range m.Data {
		out[k] = v
	}
	return out
}

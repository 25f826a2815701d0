package crawler

import (
	"context"
	"sync"
	"time"

	"sjsage522/pricecompare/services/cache"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	mu    sync.Mutex
	cache map[string][]byte
	sets  int
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = value
	m.sets++
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return nil
}

// stubFetcher answers with canned markup per store
type stubFetcher struct {
	mode  FetchMode
	pages map[Store]string
	err   error
	calls []Store
}

func (s *stubFetcher) Mode() FetchMode {
	return s.mode
}

func (s *stubFetcher) Fetch(ctx context.Context, store StoreConfig, query string) (string, error) {
	s.calls = append(s.calls, store.Store)
	if s.err != nil {
		return "", s.err
	}
	return s.pages[store.Store], nil
}

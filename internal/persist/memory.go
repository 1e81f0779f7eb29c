package persist

import (
	"context"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/goccy/go-json"
)

// MemoryStore keeps snapshots in process memory. Used in tests and as a
// last-resort fallback when no durable backend is configured.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string, out any) error {
	s.mu.Lock()
	data, ok := s.docs[key]
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

// Keys returns the stored keys, for test assertions.
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	return keys
}

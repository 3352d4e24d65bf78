package recent

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps lists in process memory and forgets a visitor after ttl
// without activity.
type MemoryStore struct {
	mu    sync.Mutex
	items *cache.Cache
	max   int
}

// NewMemoryStore builds a MemoryStore. A non-positive ttl keeps entries
// until the process exits.
func NewMemoryStore(max int, ttl time.Duration) *MemoryStore {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl / 2
	}
	return &MemoryStore{
		items: cache.New(expiration, cleanup),
		max:   clampMax(max),
	}
}

func (s *MemoryStore) Add(ctx context.Context, visitorID string, folio int64) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []int64
	if v, ok := s.items.Get(visitorID); ok {
		current = v.([]int64)
	}
	s.items.SetDefault(visitorID, Push(current, folio, s.max))
	return nil
}

func (s *MemoryStore) List(ctx context.Context, visitorID string) ([]int64, error) {
	if visitorID == "" {
		return nil, nil
	}
	v, ok := s.items.Get(visitorID)
	if !ok {
		return nil, nil
	}
	return slices.Clone(v.([]int64)), nil
}

func (s *MemoryStore) Clear(ctx context.Context, visitorID string) error {
	s.items.Delete(visitorID)
	return nil
}

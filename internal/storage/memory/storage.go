package memory

import (
	"context"
	"sync"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// Storage is an in-memory backend with an optional byte quota. The quota
// stands in for the bounded medium the scorekeeper originally persisted to,
// which is what makes the store's remediation path reachable in tests.
type Storage struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64 // bytes; 0 means unlimited
}

// New creates an unbounded in-memory storage instance
func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// NewWithQuota creates an in-memory storage instance capped at quota bytes
func NewWithQuota(quota int64) *Storage {
	return &Storage{data: make(map[string][]byte), quota: quota}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		projected := s.usedLocked() - entrySize(key, s.data[key]) + entrySize(key, value)
		if projected > s.quota {
			return model.ErrStoreFull
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, model.ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *Storage) Usage(ctx context.Context) (storage.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return storage.Usage{
		TotalBytes: s.usedLocked(),
		ItemCount:  len(s.data),
	}, nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *Storage) usedLocked() int64 {
	var total int64
	for key, value := range s.data {
		total += entrySize(key, value)
	}
	return total
}

func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}

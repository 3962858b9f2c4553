package memory

import (
	"context"
	"sync"
)

// CounterStore guarda un contador por región en memoria (modo dev y tests).
type CounterStore struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewCounterStore() *CounterStore {
	return &CounterStore{seqs: make(map[string]int64)}
}

func (s *CounterStore) Increment(ctx context.Context, region string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqs[region]++
	return s.seqs[region], nil
}

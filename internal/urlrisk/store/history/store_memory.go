package history

import (
	"context"
	"sync"

	"phishshield/internal/urlrisk/ports"
)

// DefaultCapacity is used when no capacity is given.
const DefaultCapacity = 1000

// InMemoryStore keeps the most recent assessments in a fixed-size ring.
type InMemoryStore struct {
	mu    sync.RWMutex
	ring  []*ports.Assessment
	next  int
	count int
}

// NewInMemoryStore creates a ring holding at most capacity assessments.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{ring: make([]*ports.Assessment, capacity)}
}

func (s *InMemoryStore) Append(_ context.Context, assessment *ports.Assessment) error {
	if assessment == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring[s.next] = assessment
	s.next = (s.next + 1) % len(s.ring)
	if s.count < len(s.ring) {
		s.count++
	}
	return nil
}

// Recent returns up to limit assessments, newest first.
func (s *InMemoryStore) Recent(_ context.Context, limit int) ([]*ports.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(limit, s.count)
	out := make([]*ports.Assessment, 0, max(n, 0))
	for i := range n {
		idx := (s.next - 1 - i + len(s.ring)) % len(s.ring)
		out = append(out, s.ring[idx])
	}
	return out, nil
}

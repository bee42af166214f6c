package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dylan/spotlight/tour"
)

// MemoryStore keeps flags for the lifetime of the process.
type MemoryStore struct {
	mu      sync.Mutex
	records map[tour.Feature]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[tour.Feature]Record), now: time.Now}
}

func (s *MemoryStore) HasCompleted(_ context.Context, f tour.Feature) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[f].Completed, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, f tour.Feature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[f] = Record{Feature: f, Completed: true, UpdatedAt: s.now()}
	return nil
}

func (s *MemoryStore) ShouldReshow(_ context.Context, f tour.Feature) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[f].ForceReshow, nil
}

func (s *MemoryStore) RequestReshow(_ context.Context, f tour.Feature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.records[f]
	r.Feature = f
	r.ForceReshow = true
	r.UpdatedAt = s.now()
	s.records[f] = r
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, f tour.Feature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, f)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

package events

import (
	"sync"
)

// MemoryStore is an in-memory append-only event store. Runs are identified
// by a uuid assigned when the run starts.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	byRun  map[string][]Event
}

// NewMemoryStore creates an empty event store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byRun: make(map[string][]Event),
	}
}

// Append records an event
func (s *MemoryStore) Append(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	s.byRun[event.RunID()] = append(s.byRun[event.RunID()], event)
}

// ForRun returns the events of one run in append order
func (s *MemoryStore) ForRun(runID string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run := s.byRun[runID]
	out := make([]Event, len(run))
	copy(out, run)
	return out
}

// All returns every recorded event in append order
func (s *MemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

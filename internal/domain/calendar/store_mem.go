package calendar

import (
	"context"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	events []AcademicEvent
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) CreateEvent(_ context.Context, event AcademicEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemStore) EventsByDepartment(_ context.Context, department string) ([]AcademicEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AcademicEvent
	for _, event := range s.events {
		if event.Department == department {
			out = append(out, event)
		}
	}
	return out, nil
}

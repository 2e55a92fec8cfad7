package workflow

import (
	"context"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	requests []LeaveRequest
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) CreateRequest(_ context.Context, request LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request)
	return nil
}

func (s *MemStore) RequestByID(_ context.Context, id string) (LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, request := range s.requests {
		if request.ID == id {
			return request, nil
		}
	}
	return LeaveRequest{}, ErrNotFound
}

func (s *MemStore) ApplyDecision(_ context.Context, request LeaveRequest, expect Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID != request.ID {
			continue
		}
		if s.requests[i].Status != expect {
			return ErrInvalidTransition
		}
		s.requests[i] = request
		return nil
	}
	return ErrNotFound
}

func (s *MemStore) ListRequests(_ context.Context) ([]LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LeaveRequest, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

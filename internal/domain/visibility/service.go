package visibility

import (
	"context"

	"lms/internal/domain/identity"
	"lms/internal/domain/workflow"
)

// Service answers read-only visibility queries against the request
// store. Queries are pure: no store mutation, no notice emission.
type Service struct {
	store workflow.StoreAPI
}

func NewService(store workflow.StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) VisibleRequests(ctx context.Context, viewer identity.Account) ([]workflow.LeaveRequest, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(viewer, requests), nil
}

func (s *Service) LatestVisible(ctx context.Context, viewer identity.Account) (workflow.LeaveRequest, bool, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return workflow.LeaveRequest{}, false, err
	}
	latest, ok := Latest(viewer, requests)
	return latest, ok, nil
}

func (s *Service) HistoryVisible(ctx context.Context, viewer identity.Account) ([]workflow.LeaveRequest, error) {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return History(viewer, requests), nil
}

package workflow

import "context"

type StoreAPI interface {
	CreateRequest(ctx context.Context, request LeaveRequest) error
	RequestByID(ctx context.Context, id string) (LeaveRequest, error)
	// ApplyDecision persists the request's decision fields, guarded by
	// the status the caller observed: if the stored status no longer
	// matches expect, it returns ErrInvalidTransition and writes
	// nothing.
	ApplyDecision(ctx context.Context, request LeaveRequest, expect Status) error
	ListRequests(ctx context.Context) ([]LeaveRequest, error)
}

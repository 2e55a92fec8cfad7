package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lms/internal/domain/calendar"
	"lms/internal/domain/identity"
	"lms/internal/domain/notify"
)

// Calendar is the slice of the event calendar the engine consults
// during submission.
type Calendar interface {
	EventsByDepartment(ctx context.Context, department string) ([]calendar.AcademicEvent, error)
}

type Service struct {
	store    StoreAPI
	calendar Calendar
	notices  *notify.Bus

	// Serializes the read-modify-write of decisions. The store's
	// ApplyDecision additionally checks the expected status so a lost
	// race cannot double-transition a request.
	mu  sync.Mutex
	now func() time.Time
}

func NewService(store StoreAPI, cal Calendar, notices *notify.Bus) *Service {
	return &Service{store: store, calendar: cal, notices: notices, now: time.Now}
}

// Submit creates a leave request for the requester. A non-sick request
// overlapping any academic event in the requester's department is
// created directly in terminal rejected state and never reaches a
// reviewer; that is a successful submission, not an error.
func (s *Service) Submit(ctx context.Context, requester identity.Account, kind LeaveKind, from, to time.Time, reason string) (LeaveRequest, error) {
	if from.IsZero() || to.IsZero() || strings.TrimSpace(reason) == "" {
		s.notices.Emit(notify.KindError, "Please fill in all fields!")
		return LeaveRequest{}, fmt.Errorf("%w: fromDate, toDate and reason are required", ErrValidation)
	}

	events, err := s.calendar.EventsByDepartment(ctx, requester.Department)
	if err != nil {
		s.notices.Emit(notify.KindError, "Failed to submit leave application")
		return LeaveRequest{}, err
	}
	conflict := HasConflict(kind, from, to, events)

	request := LeaveRequest{
		ID:                 uuid.NewString(),
		RequesterID:        requester.ID,
		RequesterName:      requester.Name,
		Department:         requester.Department,
		Section:            requester.Section,
		Kind:               kind,
		FromDate:           from,
		ToDate:             to,
		Reason:             reason,
		RejectedAtCreation: conflict,
		AppliedAt:          s.now().UTC(),
	}
	request.Status = DeriveStatus(request.RejectedAtCreation, nil, nil)
	if conflict {
		request.RejectionReason = ReasonEventConflict
	}

	s.mu.Lock()
	err = s.store.CreateRequest(ctx, request)
	s.mu.Unlock()
	if err != nil {
		s.notices.Emit(notify.KindError, "Failed to submit leave application")
		return LeaveRequest{}, err
	}

	if conflict {
		s.notices.Emit(notify.KindInfo, "Leave application rejected: "+ReasonEventConflict)
	} else {
		s.notices.Emit(notify.KindSuccess, "Leave application submitted successfully!")
	}
	return request, nil
}

// DecideAsAdvisor records the first-stage decision. Valid only while
// the request is pending and only for an advisor of the request's
// department and section.
func (s *Service) DecideAsAdvisor(ctx context.Context, actor identity.Account, requestID string, approve bool) (LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.store.RequestByID(ctx, requestID)
	if err != nil {
		s.notices.Emit(notify.KindError, "Leave request not found")
		return LeaveRequest{}, err
	}
	if actor.Role != identity.RoleAdvisor || actor.Department != request.Department || actor.Section != request.Section {
		s.notices.Emit(notify.KindError, "You cannot act on this leave request")
		return LeaveRequest{}, ErrForbidden
	}
	if request.Status != StatusPending {
		s.notices.Emit(notify.KindError, "Leave request is not awaiting advisor review")
		return LeaveRequest{}, fmt.Errorf("%w: advisor decision requires pending, have %s", ErrInvalidTransition, request.Status)
	}

	request.AdvisorDecision = &approve
	request.Status = DeriveStatus(request.RejectedAtCreation, request.AdvisorDecision, request.HODDecision)
	if !approve {
		request.RejectionReason = ReasonRejectedByAdvisor
	}

	if err := s.store.ApplyDecision(ctx, request, StatusPending); err != nil {
		s.notices.Emit(notify.KindError, "Failed to record decision")
		return LeaveRequest{}, err
	}

	if approve {
		s.notices.Emit(notify.KindSuccess, "Leave forwarded to HOD")
	} else {
		s.notices.Emit(notify.KindSuccess, "Leave rejected")
	}
	return request, nil
}

// DecideAsHOD records the final decision. Valid only while the request
// is forwarded and only for the HOD of the request's department.
func (s *Service) DecideAsHOD(ctx context.Context, actor identity.Account, requestID string, approve bool) (LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.store.RequestByID(ctx, requestID)
	if err != nil {
		s.notices.Emit(notify.KindError, "Leave request not found")
		return LeaveRequest{}, err
	}
	if actor.Role != identity.RoleHOD || actor.Department != request.Department {
		s.notices.Emit(notify.KindError, "You cannot act on this leave request")
		return LeaveRequest{}, ErrForbidden
	}
	if request.Status != StatusForwardedToHOD {
		s.notices.Emit(notify.KindError, "Leave request is not awaiting HOD review")
		return LeaveRequest{}, fmt.Errorf("%w: hod decision requires forwarded_to_hod, have %s", ErrInvalidTransition, request.Status)
	}

	request.HODDecision = &approve
	request.Status = DeriveStatus(request.RejectedAtCreation, request.AdvisorDecision, request.HODDecision)
	if !approve {
		request.RejectionReason = ReasonRejectedByHOD
	}

	if err := s.store.ApplyDecision(ctx, request, StatusForwardedToHOD); err != nil {
		s.notices.Emit(notify.KindError, "Failed to record decision")
		return LeaveRequest{}, err
	}

	if approve {
		s.notices.Emit(notify.KindSuccess, "Leave approved")
	} else {
		s.notices.Emit(notify.KindSuccess, "Leave rejected")
	}
	return request, nil
}

// RequestByID exposes a single request for read-only callers.
func (s *Service) RequestByID(ctx context.Context, id string) (LeaveRequest, error) {
	return s.store.RequestByID(ctx, id)
}

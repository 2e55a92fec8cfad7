package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lms/internal/domain/notify"
)

type Service struct {
	store   StoreAPI
	notices *notify.Bus
}

func NewService(store StoreAPI, notices *notify.Bus) *Service {
	return &Service{store: store, notices: notices}
}

// Schedule records an academic event for one department. Events may
// overlap each other freely.
func (s *Service) Schedule(ctx context.Context, name string, from, to time.Time, department, createdBy string) (AcademicEvent, error) {
	if strings.TrimSpace(name) == "" {
		s.notices.Emit(notify.KindError, "Please fill in all fields!")
		return AcademicEvent{}, fmt.Errorf("%w: name", ErrValidation)
	}
	if from.IsZero() || to.IsZero() {
		s.notices.Emit(notify.KindError, "Please fill in all fields!")
		return AcademicEvent{}, fmt.Errorf("%w: dates", ErrValidation)
	}

	event := AcademicEvent{
		ID:         uuid.NewString(),
		Name:       name,
		FromDate:   from,
		ToDate:     to,
		Department: department,
		CreatedBy:  createdBy,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		s.notices.Emit(notify.KindError, "Failed to create academic event")
		return AcademicEvent{}, err
	}

	s.notices.Emit(notify.KindSuccess, "Academic event created successfully!")
	return event, nil
}

func (s *Service) ListByDepartment(ctx context.Context, department string) ([]AcademicEvent, error) {
	return s.store.EventsByDepartment(ctx, department)
}

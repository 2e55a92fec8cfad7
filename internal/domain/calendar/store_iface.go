package calendar

import "context"

type StoreAPI interface {
	CreateEvent(ctx context.Context, event AcademicEvent) error
	EventsByDepartment(ctx context.Context, department string) ([]AcademicEvent, error)
}

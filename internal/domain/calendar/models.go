package calendar

import "time"

// AcademicEvent blocks non-sick leave for its department while it runs.
// Immutable after creation.
type AcademicEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FromDate   time.Time `json:"fromDate"`
	ToDate     time.Time `json:"toDate"`
	Department string    `json:"department"`
	CreatedBy  string    `json:"createdBy"`
}

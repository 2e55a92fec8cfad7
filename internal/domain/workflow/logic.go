package workflow

import (
	"time"

	"lms/internal/domain/calendar"
)

// Rejection reasons recorded on terminal requests. Each names the
// stage that caused the rejection.
const (
	ReasonEventConflict     = "Academic event scheduled during this period"
	ReasonRejectedByAdvisor = "Rejected by advisor"
	ReasonRejectedByHOD     = "Rejected by HOD"
)

// Overlaps reports whether the two inclusive date ranges intersect.
// Dates are compared at calendar-day granularity.
func Overlaps(fromA, toA, fromB, toB time.Time) bool {
	fromA, toA = dateOnly(fromA), dateOnly(toA)
	fromB, toB = dateOnly(fromB), dateOnly(toB)
	return !fromA.After(toB) && !toA.Before(fromB)
}

// HasConflict applies the conflict policy: sick leave is exempt
// unconditionally; every other kind conflicts when any departmental
// event overlaps the requested range.
func HasConflict(kind LeaveKind, from, to time.Time, events []calendar.AcademicEvent) bool {
	if kind == KindSick {
		return false
	}
	for _, event := range events {
		if Overlaps(from, to, event.FromDate, event.ToDate) {
			return true
		}
	}
	return false
}

// DeriveStatus is the single place request status is computed from the
// decision record. No call site assigns Status any other way.
func DeriveStatus(rejectedAtCreation bool, advisor, hod *bool) Status {
	switch {
	case rejectedAtCreation:
		return StatusRejected
	case advisor == nil:
		return StatusPending
	case !*advisor:
		return StatusRejected
	case hod == nil:
		return StatusForwardedToHOD
	case *hod:
		return StatusApproved
	default:
		return StatusRejected
	}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package workflow

import "time"

type LeaveKind string

const (
	KindSick      LeaveKind = "sick"
	KindPersonal  LeaveKind = "personal"
	KindEmergency LeaveKind = "emergency"
	KindOther     LeaveKind = "other"
)

func (k LeaveKind) Valid() bool {
	switch k {
	case KindSick, KindPersonal, KindEmergency, KindOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending        Status = "pending"
	StatusForwardedToHOD Status = "forwarded_to_hod"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest carries a denormalized copy of the requester's name,
// department and section so reviewers' lists render without joins.
//
// Status is never assigned directly: every write recomputes it with
// DeriveStatus from (RejectedAtCreation, AdvisorDecision, HODDecision).
type LeaveRequest struct {
	ID                 string    `json:"id"`
	RequesterID        string    `json:"requesterId"`
	RequesterName      string    `json:"requesterName"`
	Department         string    `json:"department"`
	Section            string    `json:"section"`
	Kind               LeaveKind `json:"type"`
	FromDate           time.Time `json:"fromDate"`
	ToDate             time.Time `json:"toDate"`
	Reason             string    `json:"reason"`
	Status             Status    `json:"status"`
	AdvisorDecision    *bool     `json:"advisorDecision"`
	HODDecision        *bool     `json:"hodDecision"`
	RejectedAtCreation bool      `json:"-"`
	RejectionReason    string    `json:"rejectionReason,omitempty"`
	AppliedAt          time.Time `json:"appliedAt"`
}

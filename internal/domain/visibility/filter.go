// Package visibility derives, per viewing account, the subset of leave
// requests that account may see and act on.
package visibility

import (
	"sort"

	"lms/internal/domain/identity"
	"lms/internal/domain/workflow"
)

// Filter returns the requests visible to the viewer, most recent
// first. The three role scopes never share an awaiting-action request:
// a pending request belongs to its advisor, a forwarded one to its
// HOD.
//
// Conflict-rejected requests carry a nil advisor decision and a
// rejected status, so they surface only to their requester - automatic
// rejections never reach a reviewer's list.
func Filter(viewer identity.Account, requests []workflow.LeaveRequest) []workflow.LeaveRequest {
	var visible []workflow.LeaveRequest
	for _, request := range requests {
		if visibleTo(viewer, request) {
			visible = append(visible, request)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].AppliedAt.After(visible[j].AppliedAt)
	})
	return visible
}

func visibleTo(viewer identity.Account, request workflow.LeaveRequest) bool {
	switch viewer.Role {
	case identity.RoleStudent:
		return request.RequesterID == viewer.ID
	case identity.RoleAdvisor:
		return request.Department == viewer.Department &&
			request.Section == viewer.Section &&
			(request.Status == workflow.StatusPending || request.AdvisorDecision != nil)
	case identity.RoleHOD:
		return request.Department == viewer.Department &&
			(request.Status == workflow.StatusForwardedToHOD || request.HODDecision != nil)
	default:
		return false
	}
}

// Latest returns the most recent visible request, if any. The UI
// highlights it separately from the rest.
func Latest(viewer identity.Account, requests []workflow.LeaveRequest) (workflow.LeaveRequest, bool) {
	visible := Filter(viewer, requests)
	if len(visible) == 0 {
		return workflow.LeaveRequest{}, false
	}
	return visible[0], true
}

// History returns every visible request after the most recent one.
func History(viewer identity.Account, requests []workflow.LeaveRequest) []workflow.LeaveRequest {
	visible := Filter(viewer, requests)
	if len(visible) <= 1 {
		return nil
	}
	return visible[1:]
}

package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lms/internal/domain/identity"
	"lms/internal/domain/reports"
	"lms/internal/domain/visibility"
	"lms/internal/domain/workflow"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
	"lms/internal/transport/http/shared"
)

type Handler struct {
	Workflow   *workflow.Service
	Visibility *visibility.Service
	Reports    *reports.Service
}

func NewHandler(workflowSvc *workflow.Service, visibilitySvc *visibility.Service, reportsSvc *reports.Service) *Handler {
	return &Handler{Workflow: workflowSvc, Visibility: visibilitySvc, Reports: reportsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireRole(identity.RoleStudent)).Post("/requests", h.handleSubmit)
		r.Get("/requests", h.handleListVisible)
		r.Get("/requests/latest", h.handleLatest)
		r.Get("/requests/history", h.handleHistory)
		r.With(middleware.RequireRole(identity.RoleAdvisor)).Post("/requests/{requestID}/advisor-decision", h.handleAdvisorDecision)
		r.With(middleware.RequireRole(identity.RoleHOD)).Post("/requests/{requestID}/hod-decision", h.handleHODDecision)
		r.With(middleware.RequireRole(identity.RoleHOD)).Get("/reports/summary.pdf", h.handleSummaryPDF)
	})
}

var leaveKindValues = []string{
	string(workflow.KindSick),
	string(workflow.KindPersonal),
	string(workflow.KindEmergency),
	string(workflow.KindOther),
}

type submitRequest struct {
	Type     string `json:"type"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
	Reason   string `json:"reason"`
}

type decisionRequest struct {
	Approve bool `json:"approve"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	viewer, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("reason", payload.Reason, "is required")
	v.Enum("type", payload.Type, leaveKindValues, "must be sick, personal, emergency or other")
	from, fromOK := v.Date("fromDate", payload.FromDate)
	to, toOK := v.Date("toDate", payload.ToDate)
	if fromOK && toOK {
		v.DateOrder("fromDate", from, "toDate", to)
	}
	if v.Reject(w, requestID) {
		return
	}

	kind := workflow.LeaveKind(payload.Type)
	if payload.Type == "" {
		kind = workflow.KindSick
	}

	request, err := h.Workflow.Submit(r.Context(), viewer, kind, from, to, payload.Reason)
	if err != nil {
		failWorkflow(w, err, requestID)
		return
	}
	api.Created(w, request, requestID)
}

type decideFunc func(ctx context.Context, actor identity.Account, requestID string, approve bool) (workflow.LeaveRequest, error)

func (h *Handler) handleAdvisorDecision(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.Workflow.DecideAsAdvisor)
}

func (h *Handler) handleHODDecision(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.Workflow.DecideAsHOD)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, decide decideFunc) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	targetID := chi.URLParam(r, "requestID")
	if targetID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request id is required", requestID)
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	request, err := decide(r.Context(), actor, targetID, payload.Approve)
	if err != nil {
		failWorkflow(w, err, requestID)
		return
	}
	api.Success(w, request, requestID)
}

func (h *Handler) handleListVisible(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	viewer, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	requests, err := h.Visibility.VisibleRequests(r.Context(), viewer)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave requests", requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	viewer, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	latest, found, err := h.Visibility.LatestVisible(r.Context(), viewer)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_latest_failed", "failed to load latest leave request", requestID)
		return
	}
	if !found {
		api.Success(w, nil, requestID)
		return
	}
	api.Success(w, latest, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	viewer, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	history, err := h.Visibility.HistoryVisible(r.Context(), viewer)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_history_failed", "failed to load leave history", requestID)
		return
	}
	api.Success(w, history, requestID)
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	viewer, ok := viewerAccount(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-summary.pdf"`)
	if err := h.Reports.DepartmentSummaryPDF(r.Context(), viewer.Department, w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", requestID)
	}
}

func viewerAccount(r *http.Request) (identity.Account, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return identity.Account{}, false
	}
	return identity.Account{
		ID:         user.AccountID,
		Name:       user.Name,
		Role:       identity.Role(user.Role),
		Department: user.Department,
		Section:    user.Section,
	}, true
}

func failWorkflow(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, workflow.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, workflow.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), requestID)
	case errors.Is(err, workflow.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "you cannot act on this leave request", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_request_failed", "leave operation failed", requestID)
	}
}

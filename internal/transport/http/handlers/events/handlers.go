package eventshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lms/internal/domain/calendar"
	"lms/internal/domain/identity"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
	"lms/internal/transport/http/shared"
)

type Handler struct {
	Calendar *calendar.Service
}

func NewHandler(calendarSvc *calendar.Service) *Handler {
	return &Handler{Calendar: calendarSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.With(middleware.RequireRole(identity.RoleAdvisor)).Post("/", h.handleCreate)
		r.Get("/", h.handleList)
	})
}

type createEventRequest struct {
	Name     string `json:"name"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	from, fromOK := v.Date("fromDate", payload.FromDate)
	to, toOK := v.Date("toDate", payload.ToDate)
	if fromOK && toOK {
		v.DateOrder("fromDate", from, "toDate", to)
	}
	if v.Reject(w, requestID) {
		return
	}

	event, err := h.Calendar.Schedule(r.Context(), payload.Name, from, to, user.Department, user.AccountID)
	if err != nil {
		if errors.Is(err, calendar.ErrValidation) {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "event_create_failed", "failed to create event", requestID)
		return
	}
	api.Created(w, event, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	events, err := h.Calendar.ListByDepartment(r.Context(), user.Department)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "event_list_failed", "failed to list events", requestID)
		return
	}
	api.Success(w, events, requestID)
}

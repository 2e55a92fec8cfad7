package noticeshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lms/internal/domain/notify"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
)

type Handler struct {
	Notices *notify.Bus
}

func NewHandler(bus *notify.Bus) *Handler {
	return &Handler{Notices: bus}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notices", func(r chi.Router) {
		r.Get("/active", h.handleActive)
		r.Delete("/active", h.handleDismiss)
	})
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	notice, ok := h.Notices.Active()
	if !ok {
		api.Success(w, nil, requestID)
		return
	}
	api.Success(w, notice, requestID)
}

func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	h.Notices.Dismiss()
	api.Success(w, nil, requestID)
}

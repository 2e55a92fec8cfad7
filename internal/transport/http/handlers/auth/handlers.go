package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lms/internal/auth"
	"lms/internal/domain/identity"
	"lms/internal/transport/http/api"
	"lms/internal/transport/http/middleware"
	"lms/internal/transport/http/shared"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Identity *identity.Service
	Secret   string
}

func NewHandler(identitySvc *identity.Service, secret string) *Handler {
	return &Handler{Identity: identitySvc, Secret: secret}
}

type signupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Section    string `json:"section"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var roleValues = []string{
	string(identity.RoleStudent),
	string(identity.RoleAdvisor),
	string(identity.RoleHOD),
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload signupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	v.Required("department", payload.Department, "is required")
	v.Required("role", payload.Role, "is required")
	v.Enum("department", payload.Department, identity.Departments, "must be a known department")
	v.Enum("role", payload.Role, roleValues, "must be student, advisor or hod")
	if identity.Role(payload.Role) != identity.RoleHOD {
		v.Required("section", payload.Section, "is required")
		v.Enum("section", payload.Section, identity.Sections, "must be a known section")
	}
	if v.Reject(w, requestID) {
		return
	}

	account, err := h.Identity.Register(r.Context(), identity.RegisterInput{
		Name:       payload.Name,
		Email:      payload.Email,
		Password:   payload.Password,
		Department: payload.Department,
		Role:       identity.Role(payload.Role),
		Section:    payload.Section,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrDuplicateEmail):
			api.Fail(w, http.StatusConflict, "duplicate_email", "email already registered", requestID)
		case errors.Is(err, identity.ErrValidation):
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "signup_failed", "failed to create account", requestID)
		}
		return
	}

	api.Created(w, account, requestID)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	account, err := h.Identity.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) || errors.Is(err, identity.ErrValidation) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", requestID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		AccountID:  account.ID,
		Name:       account.Name,
		Role:       string(account.Role),
		Department: account.Department,
		Section:    account.Section,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  account,
	}, requestID)
}

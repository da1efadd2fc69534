package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/http/respond"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/service"
)

// AuthHandler owns the unauthenticated register/login endpoints.
type AuthHandler struct {
	users *service.UserService
	auth  *service.AuthService
	log   *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users *service.UserService, auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, log: log}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users/register", h.handleRegister)
	mux.HandleFunc("POST /users/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid JSON payload")
		return
	}

	created, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "validation_error", "email and password are required")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session, err := h.auth.IssueSession(user)
	if err != nil {
		h.log.Error("failed to issue session", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal", "failed to generate token")
		return
	}

	respond.JSON(w, http.StatusOK, session)
}

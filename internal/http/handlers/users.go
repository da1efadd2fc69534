package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/http/respond"
	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/service"
)

// UserHandler owns the bearer-token-protected user endpoints.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
	log   *zap.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(users *service.UserService, auth *service.AuthService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, auth: auth, log: log}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users/me", h.handleMe)
	mux.HandleFunc("GET /users", h.handleList)
	mux.HandleFunc("GET /users/{id}", h.handleGet)
	mux.HandleFunc("PUT /users/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /users/{id}", h.handleDelete)
}

// currentUser resolves the bearer token on the request. On failure it writes
// the response itself and reports ok=false.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		respond.Error(w, http.StatusUnauthorized, "unauthorized", service.ErrUnauthorized.Error())
		return models.User{}, false
	}

	user, err := h.auth.ResolveCurrentUser(r.Context(), strings.TrimSpace(token))
	if err != nil {
		writeServiceError(w, err)
		return models.User{}, false
	}
	return user, true
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	users, err := h.users.List(r.Context(), current)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), current, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var patch dto.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Error(w, http.StatusBadRequest, "validation_error", "invalid JSON payload")
		return
	}

	updated, err := h.users.Update(r.Context(), current, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	current, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), current, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/hongminglow/userhub-be/internal/http/respond"
	"github.com/hongminglow/userhub-be/internal/service"
	"github.com/hongminglow/userhub-be/internal/storage"
)

// writeServiceError is the single place a domain error becomes an HTTP status
// and machine-readable kind. Anything unrecognized is treated as a
// persistence failure and surfaced as a 5xx instead of being swallowed.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Error(w, http.StatusUnprocessableEntity, "validation_error", ve.Message)
	case errors.Is(err, service.ErrDuplicate):
		respond.Error(w, http.StatusBadRequest, "duplicate_key", service.ErrDuplicate.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, "unauthorized", service.ErrUnauthorized.Error())
	case errors.Is(err, service.ErrInactiveUser):
		respond.Error(w, http.StatusForbidden, "inactive_user", service.ErrInactiveUser.Error())
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, http.StatusForbidden, "forbidden", service.ErrForbidden.Error())
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "not_found", service.ErrNotFound.Error())
	case errors.Is(err, storage.ErrCreatedNotRetrieved):
		respond.Error(w, http.StatusInternalServerError, "store_unavailable", storage.ErrCreatedNotRetrieved.Error())
	default:
		respond.Error(w, http.StatusServiceUnavailable, "store_unavailable", "service temporarily unavailable")
	}
}

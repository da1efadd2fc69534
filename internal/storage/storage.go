package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict on email or username.
var ErrAlreadyExists = errors.New("record already exists")

// ErrCreatedNotRetrieved means the insert succeeded but the row could not be
// read back. The record may exist; callers must not report a plain failure.
var ErrCreatedNotRetrieved = errors.New("record created but retrieval failed")

// UserStore captures persistence operations needed by the services. The store
// assigns IDs and enforces email/username uniqueness.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, patch dto.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

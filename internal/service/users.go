package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hongminglow/userhub-be/internal/auth"
	"github.com/hongminglow/userhub-be/internal/config"
	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/storage"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// UserService handles registration and the authorization-gated read, update,
// and delete operations. All gated operations follow the same rule: permitted
// iff the caller is an admin or the target is the caller itself.
type UserService struct {
	store storage.UserStore
	cfg   config.Config
	log   *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(store storage.UserStore, cfg config.Config, log *zap.Logger) *UserService {
	return &UserService{store: store, cfg: cfg, log: log}
}

// Register validates the input, hashes the password, and persists a new
// non-admin user. The returned record never carries the plaintext password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return models.User{}, err
	}

	if _, err := s.store.FindByEmail(ctx, req.Email); err == nil {
		s.log.Warn("registration attempt with existing email", zap.String("email", req.Email))
		return models.User{}, ErrDuplicate
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	// Hash before any store interaction; the plaintext goes no further.
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		IsAdmin:      false,
		Disabled:     req.Disabled,
		PasswordHash: passwordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.User{}, ErrDuplicate
		case errors.Is(err, storage.ErrCreatedNotRetrieved):
			// The row may exist; surface this distinctly from a plain failure.
			s.log.Error("user created but not found in store", zap.String("email", req.Email))
			return models.User{}, err
		}
		s.log.Error("store error during user creation", zap.Error(err))
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("id", created.ID), zap.String("email", created.Email))
	return created, nil
}

// Get returns the target user, permitted for admins and the user itself.
func (s *UserService) Get(ctx context.Context, current models.User, id string) (models.User, error) {
	if err := s.requireSelfOrAdmin(current, id, "view"); err != nil {
		return models.User{}, err
	}
	return s.findByID(ctx, id)
}

// List returns all users; admins only.
func (s *UserService) List(ctx context.Context, current models.User) ([]models.User, error) {
	if !current.IsAdmin {
		s.log.Warn("unauthorized users list attempt", zap.String("by", current.ID))
		return nil, ErrForbidden
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies the patch to the target user, permitted for admins and the
// user itself. Only the patch's present fields change; id and password are
// not part of the patch type at all.
func (s *UserService) Update(ctx context.Context, current models.User, id string, patch dto.UserPatch) (models.User, error) {
	if err := s.requireSelfOrAdmin(current, id, "update"); err != nil {
		return models.User{}, err
	}
	if patch.Empty() {
		// Nothing to change; still report NotFound for an absent target.
		return s.findByID(ctx, id)
	}
	if err := s.validatePatch(patch); err != nil {
		return models.User{}, err
	}

	updated, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return models.User{}, ErrNotFound
		case errors.Is(err, storage.ErrAlreadyExists):
			return models.User{}, ErrDuplicate
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("user updated", zap.String("id", id), zap.String("by", current.ID))
	return updated, nil
}

// Delete removes the target user, permitted for admins and the user itself.
func (s *UserService) Delete(ctx context.Context, current models.User, id string) error {
	if err := s.requireSelfOrAdmin(current, id, "delete"); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("user deleted", zap.String("id", id), zap.String("by", current.ID))
	return nil
}

// requireSelfOrAdmin runs before any store lookup so a non-admin probing a
// foreign id always sees Forbidden, never NotFound.
func (s *UserService) requireSelfOrAdmin(current models.User, targetID, action string) error {
	if current.IsAdmin || current.ID == targetID {
		return nil
	}
	s.log.Warn("unauthorized access attempt",
		zap.String("action", action),
		zap.String("target", targetID),
		zap.String("by", current.ID))
	return ErrForbidden
}

func (s *UserService) findByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *UserService) validateRegistration(req dto.RegisterRequest) error {
	if err := validateName("name", req.Name); err != nil {
		return err
	}
	if err := validateName("surname", req.Surname); err != nil {
		return err
	}
	if err := validateUsername(req.Username); err != nil {
		return err
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := s.validateAge(req.Age); err != nil {
		return err
	}
	return s.validatePassword(req.Password)
}

func (s *UserService) validatePatch(patch dto.UserPatch) error {
	if patch.Name != nil {
		if err := validateName("name", *patch.Name); err != nil {
			return err
		}
	}
	if patch.Surname != nil {
		if err := validateName("surname", *patch.Surname); err != nil {
			return err
		}
	}
	if patch.Username != nil {
		if err := validateUsername(*patch.Username); err != nil {
			return err
		}
	}
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return err
		}
	}
	if patch.Age != nil {
		if err := s.validateAge(*patch.Age); err != nil {
			return err
		}
	}
	return nil
}

func validateName(field, value string) error {
	if n := utf8.RuneCountInString(value); n < 2 || n > 50 {
		return validationErr(field + " must be between 2 and 50 characters")
	}
	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return validationErr("username must be 3-20 characters of letters, digits, or underscore")
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationErr("email is not a valid address")
	}
	return nil
}

func (s *UserService) validateAge(age int) error {
	if age < s.cfg.MinAge || age > 120 {
		return validationErr(fmt.Sprintf("age must be between %d and 120", s.cfg.MinAge))
	}
	return nil
}

func (s *UserService) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < s.cfg.MinPasswordLength {
		return validationErr(fmt.Sprintf("password must be at least %d characters", s.cfg.MinPasswordLength))
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return validationErr("password cannot contain whitespace")
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return validationErr("password must contain an uppercase letter")
	}
	if !hasDigit {
		return validationErr("password must contain a digit")
	}
	return nil
}

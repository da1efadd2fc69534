// Package memory provides an in-process UserStore for unit tests and small
// deployments that do not need Postgres. It is injected like any other store
// and owns its own locking; nothing reaches it through package-level state.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store keeps users in a mutex-guarded map keyed by id.
type Store struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserStore returns an empty store.
func NewUserStore() *Store {
	return &Store{users: make(map[string]models.User)}
}

// CreateUser assigns an id and inserts the user, enforcing email/username
// uniqueness like the database schema does.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindByID fetches a user by id.
func (s *Store) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// UpdateUser applies only the fields present in the patch.
func (s *Store) UpdateUser(_ context.Context, id string, patch dto.UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}

	if patch.Email != nil || patch.Username != nil {
		for otherID, other := range s.users {
			if otherID == id {
				continue
			}
			if patch.Email != nil && other.Email == *patch.Email {
				return models.User{}, storage.ErrAlreadyExists
			}
			if patch.Username != nil && other.Username == *patch.Username {
				return models.User{}, storage.ErrAlreadyExists
			}
		}
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Surname != nil {
		user.Surname = *patch.Surname
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Age != nil {
		user.Age = *patch.Age
	}
	if patch.Disabled != nil {
		user.Disabled = *patch.Disabled
	}

	s.users[id] = user
	return user, nil
}

// DeleteUser removes a user. Deleting an absent id reports ErrNotFound.
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ListUsers returns every user ordered by creation time.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// SetAdmin flags an existing user as administrator. Admins are provisioned
// out of band; registration never grants the flag.
func (s *Store) SetAdmin(id string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.IsAdmin = isAdmin
	s.users[id] = user
	return nil
}

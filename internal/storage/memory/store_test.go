package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/storage"
)

func seedUser(username, email string) models.User {
	return models.User{
		Name: "Gabriel", Surname: "Otero", Username: username, Email: email,
		Age: 28, PasswordHash: "$2a$10$fakehash",
	}
}

func TestCreateAssignsIDAndEnforcesUniqueness(t *testing.T) {
	t.Parallel()
	store := NewUserStore()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, seedUser("gotero", "a@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = store.CreateUser(ctx, seedUser("other", "a@x.com"))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.CreateUser(ctx, seedUser("gotero", "b@x.com"))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindUpdateDelete(t *testing.T) {
	t.Parallel()
	store := NewUserStore()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, seedUser("gotero", "a@x.com"))
	require.NoError(t, err)

	byEmail, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	name := "Gabo"
	updated, err := store.UpdateUser(ctx, created.ID, dto.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Gabo", updated.Name)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)

	require.NoError(t, store.DeleteUser(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteUser(ctx, created.ID), storage.ErrNotFound)

	_, err = store.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateRejectsConflictingEmail(t *testing.T) {
	t.Parallel()
	store := NewUserStore()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, seedUser("gotero", "a@x.com"))
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, seedUser("second", "b@x.com"))
	require.NoError(t, err)

	taken := "b@x.com"
	_, err = store.UpdateUser(ctx, first.ID, dto.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestListOrderedByCreation(t *testing.T) {
	t.Parallel()
	store := NewUserStore()
	ctx := context.Background()

	for _, u := range []models.User{
		seedUser("first_u", "1@x.com"),
		seedUser("second_u", "2@x.com"),
		seedUser("third_u", "3@x.com"),
	} {
		_, err := store.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.True(t, !users[1].CreatedAt.Before(users[0].CreatedAt))
	assert.True(t, !users[2].CreatedAt.Before(users[1].CreatedAt))
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/userhub-be/internal/models"
	"github.com/hongminglow/userhub-be/internal/models/dto"
	"github.com/hongminglow/userhub-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

const userColumns = "id, name, surname, username, email, age, is_admin, disabled, password_hash, created_at"

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore connects to the database and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			age INT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			disabled BOOLEAN NOT NULL DEFAULT FALSE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique_idx ON users (username);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row with a store-assigned id.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, name, surname, username, email, age, is_admin, disabled, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s;`, userColumns)

	row := s.pool.QueryRow(ctx, query,
		uuid.NewString(), user.Name, user.Surname, user.Username, user.Email,
		user.Age, user.IsAdmin, user.Disabled, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		return models.User{}, translateCreateErr(err)
	}
	return created, nil
}

// translateCreateErr maps scan failures on the insert path. scanUser has
// already turned pgx.ErrNoRows into storage.ErrNotFound; on an insert that
// means the statement succeeded but the row could not be read back, which
// callers must see as a distinct retrieval failure, not a missing record.
func translateCreateErr(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		return storage.ErrAlreadyExists
	case errors.Is(err, storage.ErrNotFound):
		return storage.ErrCreatedNotRetrieved
	}
	return err
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1;`, userColumns)
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindByID fetches a user by id.
func (s *Store) FindByID(ctx context.Context, id string) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1;`, userColumns)
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// UpdateUser applies only the fields present in the patch and returns the
// updated row. ID and password are not reachable through this statement.
func (s *Store) UpdateUser(ctx context.Context, id string, patch dto.UserPatch) (models.User, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Surname != nil {
		add("surname", *patch.Surname)
	}
	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Disabled != nil {
		add("disabled", *patch.Disabled)
	}
	if len(sets) == 0 {
		return s.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s;`,
		strings.Join(sets, ", "), len(args), userColumns)

	updated, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return updated, nil
}

// DeleteUser removes a user row. Deleting an absent id reports ErrNotFound.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListUsers returns every user ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at ASC;`, userColumns)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Username, &user.Email,
		&user.Age, &user.IsAdmin, &user.Disabled, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskora/internal/platform/constants"
	"github.com/taibuivan/taskora/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// Every error path routes through [dberr.Wrap], so callers can rely on the
// NOT_FOUND / CONFLICT / INTERNAL classification being accurate.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new credential record into the users.account table.

Description: The UNIQUE constraint on username is the authoritative
enforcement point for registration races; a violation is translated into a
client-safe Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate username, apperr.Internal otherwise
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO ` + constants.SchemaUsers + `.account (
			id, username, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(
			fmt.Errorf("postgres_user_repo_create_failed: %w", err),
			"User", "Username is already taken",
		)
	}

	return nil
}

/*
FindByUsername retrieves a credential record by its unique username.

Description: Case-sensitive lookup used by login and the registration
availability pre-check.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound when absent, apperr.Internal on database faults
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, passwordhash, createdat, updatedat
		FROM ` + constants.SchemaUsers + `.account
		WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(
			fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err),
			"User", "",
		)
	}

	return user, nil
}

/*
FindByID retrieves a credential record by its unique ID.

Description: Primary key resolution used by the profile flow.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound when absent, apperr.Internal on database faults
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, passwordhash, createdat, updatedat
		FROM ` + constants.SchemaUsers + `.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(
			fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err),
			"User", "",
		)
	}

	return user, nil
}

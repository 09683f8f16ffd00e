// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/taskora/internal/platform/apperr"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
//
// # Why it matters
//
// The "check availability then insert" sequence used during registration is
// advisory only: under concurrent attempts, the unique constraint in the
// store is the sole enforcement point, and this classifier is how the service
// layer translates that constraint into a client-facing conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Classification:
//   - pgx.ErrNoRows            → apperr.NotFound(resource)
//   - unique violation (23505) → apperr.Conflict(conflictMessage)
//   - anything else            → apperr.Internal (cause kept for logs only)
//
// Every repository error path routes through here, so the distinction between
// "row is missing" and "database is down" is never lost on the way up.
func Wrap(err error, resource, conflictMessage string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique constraint violations become client-safe conflicts
	if IsUniqueViolation(err) {
		return apperr.Conflict(conflictMessage)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

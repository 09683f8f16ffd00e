// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskora/internal/platform/apperr"
	"github.com/taibuivan/taskora/internal/platform/dberr"
)

/*
TestIsUniqueViolation verifies SQLSTATE 23505 classification, including
through wrapped error chains.
*/
func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))

	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, dberr.IsUniqueViolation(nil))
}

/*
TestWrap verifies the three-way classification every repository error path
relies on.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Task", ""))

	// Missing row → NOT_FOUND with the caller's resource name.
	notFound := dberr.Wrap(fmt.Errorf("query: %w", pgx.ErrNoRows), "Task", "")
	ae := apperr.As(notFound)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Task not found", ae.Message)
	assert.True(t, apperr.IsNotFound(notFound))

	// Unique violation → CONFLICT with the caller's message.
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	conflict := dberr.Wrap(fmt.Errorf("insert: %w", unique), "User", "Username is already taken")
	ae = apperr.As(conflict)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Username is already taken", ae.Message)

	// Anything else → INTERNAL, cause retained for logging, never NOT_FOUND.
	cause := errors.New("dial tcp: connection refused")
	infra := dberr.Wrap(cause, "Task", "")
	ae = apperr.As(infra)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.ErrorIs(t, infra, cause)
	assert.False(t, apperr.IsNotFound(infra))
}

// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskora/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against
its own plaintext and nothing else.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	plain := "sunshine1"

	hash, err := sec.HashPassword(plain)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The digest must never contain the plaintext
	assert.NotContains(t, hash, plain)

	assert.True(t, sec.CheckPasswordHash(plain, hash))
	assert.False(t, sec.CheckPasswordHash("sunshine2", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_FreshSalt verifies that hashing the same password twice
produces different digests (fresh random salt per call).
*/
func TestHashPassword_FreshSalt(t *testing.T) {
	first, err := sec.HashPassword("sunshine1")
	require.NoError(t, err)

	second, err := sec.HashPassword("sunshine1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both digests still verify the same plaintext
	assert.True(t, sec.CheckPasswordHash("sunshine1", first))
	assert.True(t, sec.CheckPasswordHash("sunshine1", second))
}

/*
TestHashPassword_Empty verifies that empty plaintexts are rejected outright.
*/
func TestHashPassword_Empty(t *testing.T) {
	_, err := sec.HashPassword("")
	assert.ErrorIs(t, err, sec.ErrEmptyPassword)
}

/*
TestCheckPasswordDecoy verifies the decoy comparison never succeeds.
*/
func TestCheckPasswordDecoy(t *testing.T) {
	assert.False(t, sec.CheckPasswordDecoy("sunshine1"))
	assert.False(t, sec.CheckPasswordDecoy(""))
	assert.False(t, sec.CheckPasswordDecoy("taskora-decoy-credential"))
}

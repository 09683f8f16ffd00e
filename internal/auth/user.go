// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User) and the logic for registration,
authentication, and token lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User is the persisted credential record identifying a member.
//
// # Invariants
//
// Username is unique and case-sensitive; uniqueness is enforced by the
// store's constraint at write time, never by application-level checks alone.
// The record is immutable after creation within this core (the password hash
// is never mutated here) and is never deleted by this core.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)

// # Constraints

const (
	// UsernameMinLen is the minimum accepted username length.
	UsernameMinLen = 3

	// UsernameMaxLen is the maximum accepted username length.
	UsernameMaxLen = 50
)

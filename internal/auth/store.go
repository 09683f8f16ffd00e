// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for credential records.
//
// # Uniqueness
//
// Implementations must reject a Create for an already-taken username with a
// conflict error backed by a storage-level uniqueness constraint. The service
// layer's availability pre-check is an optimization only.
type UserRepository interface {

	/*
		FindByID returns the credential record with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the credential record with the given username.

		Parameters:
		  - context: context.Context
		  - username: string (case-sensitive match)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new credential record to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate username, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Token Denylist

// TokenDenylist defines the contract for the optional server-side revocation
// store.
//
// # Statelessness
//
// Tokens remain stateless by default: a nil denylist means logout is purely a
// client-side discard and a replayed token stays valid until natural expiry.
// When a denylist is wired in, the verifier consults it after signature and
// expiry checks succeed.
type TokenDenylist interface {

	/*
		Revoke records a token signature as invalid for the remainder of the
		token's life.

		Parameters:
		  - context: context.Context
		  - signature: string (encoded JWS signature segment)
		  - ttl: time.Duration (remaining validity; entries expire with the token)

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, signature string, ttl time.Duration) error

	/*
		IsRevoked reports whether a token signature has been denylisted.

		Parameters:
		  - context: context.Context
		  - signature: string

		Returns:
		  - bool: true if the signature is present in the denylist
		  - error: Retrieval failures
	*/
	IsRevoked(context context.Context, signature string) (bool, error)
}

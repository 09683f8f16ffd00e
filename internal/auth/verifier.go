// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/taskora/internal/platform/sec"
)

// Verifier adapts the cryptographic [TokenProvider] into the middleware's
// context-aware verification contract, layering the optional denylist check
// on top of signature and expiry validation.
type Verifier struct {
	tokenProvider TokenProvider

	// denylist is optional; nil means pure stateless verification.
	denylist TokenDenylist
}

// NewVerifier constructs a [Verifier]. Pass a nil denylist for stateless mode.
func NewVerifier(tokenProv TokenProvider, denylist TokenDenylist) *Verifier {
	return &Verifier{tokenProvider: tokenProv, denylist: denylist}
}

/*
VerifyToken validates a bearer token and returns the request-scoped identity.

Description: Signature and expiry are checked first; only a
cryptographically valid token earns a denylist lookup. The denylist is
consulted only when configured, preserving statelessness as the default.

Parameters:
  - context: context.Context
  - tokenString: string

Returns:
  - *sec.AuthClaims: The embedded identity (userID, username)
  - error: Any validation failure; callers collapse all causes into one 401
*/
func (verifier *Verifier) VerifyToken(context context.Context, tokenString string) (*sec.AuthClaims, error) {
	claims, err := verifier.tokenProvider.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	if verifier.denylist != nil {
		signature, err := sec.TokenSignature(tokenString)
		if err != nil {
			return nil, err
		}

		revoked, err := verifier.denylist.IsRevoked(context, signature)
		if err != nil {
			return nil, fmt.Errorf("auth_verifier_denylist_check_failed: %w", err)
		}
		if revoked {
			return nil, sec.ErrTokenExpired
		}
	}

	return claims, nil
}

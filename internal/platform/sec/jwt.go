// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing,
// Ownership checks) from the domain logic. It acts as an Infrastructure
// service injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the JWT, the
// authentication middleware can reconstruct the active identity WITHOUT
// querying the database on every single API request. The identity derived
// from these claims is request-scoped and never persisted.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// # Validation Failures
//
// The three ways a token can be rejected. Handlers collapse all of them into
// a single 401 before the error crosses the system boundary; the distinction
// exists for logging and tests only.
var (
	// ErrTokenMalformed means the string could not be decoded into claims+signature.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenSignature means signature verification failed (tampering or wrong key).
	ErrTokenSignature = errors.New("sec: token signature is invalid")

	// ErrTokenExpired means the token was valid but its expiry has passed.
	ErrTokenExpired = errors.New("sec: token is expired")
)

// TokenService issues and verifies JWT access tokens using the HS256
// symmetric scheme. Issuer and validator share the same secret key, which is
// injected once at construction and read-only afterwards.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// now is swappable in tests; production always uses the wall clock.
	now func() time.Time
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The shared HMAC signing key. Must not be empty.
//   - issuer: The 'iss' claim stamped into every token.
//   - ttl: Token lifetime. Changing it later never invalidates issued tokens,
//     because each token carries its own absolute expiry.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	return &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// IssueAccessToken creates a signed JWT binding the given identity to an expiry.
func (service *TokenService) IssueAccessToken(userID, username string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string and returns
// the embedded identity claims.
//
// # Order of Checks
//
// The signature is verified before any claim (including expiry) is trusted,
// so unsigned or tampered claims never influence the outcome. Expiry is
// judged against the wall clock, not issuance-relative arithmetic: a token
// whose 'iat' lies beyond its own 'exp' is still rejected once real time
// passes 'exp'.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps jwt/v5 parse errors onto this package's failure set.
//
// Signature failure takes precedence over expiry: a tampered token must never
// be reported as merely expired.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}

// TokenSignature extracts the encoded signature segment of a compact JWS.
//
// The signature is used as the denylist key for revoked tokens: it is unique
// per token, fixed-length, and reveals nothing about the claims.
func TokenSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", ErrTokenMalformed
	}
	return parts[2], nil
}

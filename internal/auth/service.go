// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/taskora/internal/platform/apperr"
	"github.com/taibuivan/taskora/internal/platform/sec"
	"github.com/taibuivan/taskora/internal/platform/validate"
	"github.com/taibuivan/taskora/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and checking signed access
// tokens. Both sides share the same symmetric secret, injected once at
// construction.
type TokenProvider interface {
	// IssueAccessToken creates a signed JWT binding the identity to an expiry.
	IssueAccessToken(userID, username string) (string, error)

	// VerifyToken checks signature and expiry and returns the embedded claims.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)

	// TTL reports the configured token lifetime.
	TTL() time.Duration
}

// Service implements the session management use cases: Register, Login,
// Logout, and Profile.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully; in particular the collapsed
// error signal in [Service.Login] is a deliberate anti-enumeration contract.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider

	// denylist is optional. nil keeps tokens purely stateless.
	denylist TokenDenylist
}

// NewService constructs a new [Service] with necessary dependencies.
// Pass a nil denylist to run without server-side revocation.
func NewService(userRepo UserRepository, tokenProv TokenProvider, denylist TokenDenylist) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		denylist:       denylist,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Password string
}

/*
Register validates, hashes, and persists a brand new credential record.

Description: Enforces the password policy, hashes the password with a fresh
salt, and persists the credential. No token is issued — registration and
login are separate steps.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (password hash never serialized)
  - error: Validation, Conflict (username taken), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Password policy belongs to this layer, not the transport: weak
	// credentials are a business rule violation regardless of caller.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Advisory availability pre-check. The store's unique constraint is the
	// real enforcement point; this only produces a friendlier fast path.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	// Persist the user. A concurrent registration racing past the pre-check
	// surfaces here as a Conflict from the store's unique constraint.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues a signed access token.

Description: Verifies identity with constant-time password comparison and
mints a stateless session token.

# Anti-Enumeration

An unknown username and a wrong password produce the exact same error value,
and the unknown-username path still burns one bcrypt verification against a
decoy digest so the two failures are indistinguishable by timing as well.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session credentials
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		// Only a missing account collapses into the opaque credential failure.
		// An infrastructure fault must keep propagating as a server error: the
		// caller's password is not wrong just because the database is down.
		if apperr.IsNotFound(err) {
			sec.CheckPasswordDecoy(input.Password)
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   service.tokenProvider.TTL(),
		User:        user,
	}, nil
}

// # Session Termination

/*
Logout terminates the caller's session.

Description: By default logout is a client-side contract — the caller
discards the token, and a replayed copy stays valid until natural expiry.
When the optional denylist is configured, the token's signature is recorded
there for its remaining life, so replays are rejected server-side too.

Logout is idempotent: invalid, expired, or already-revoked tokens all
succeed silently.

Parameters:
  - context: context.Context
  - tokenString: string (the raw bearer token presented by the caller)

Returns:
  - error: Denylist persistence failures only
*/
func (service *Service) Logout(context context.Context, tokenString string) error {
	if service.denylist == nil {
		return nil
	}

	signature, err := sec.TokenSignature(tokenString)
	if err != nil {
		return nil
	}

	// Only a token that still verifies carries a trustworthy expiry; anything
	// else is already unusable and needs no denylist entry.
	claims, err := service.tokenProvider.VerifyToken(tokenString)
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := service.denylist.Revoke(context, signature, remaining); err != nil {
		return fmt.Errorf("auth_service_logout_revoke_failed: %w", err)
	}

	return nil
}

// # Profile

/*
Profile resolves a validated identity into its public account view.

Description: Looks up the credential record by the user ID embedded in the
already-validated token and returns the safe subset of fields. The password
hash never leaves this layer.

Parameters:
  - context: context.Context
  - userID: string (from validated token claims, never from client input)

Returns:
  - *User: Account entity (hash omitted from serialization)
  - error: Unauthorized if the account no longer exists, or storage failures
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		// A valid token for a vanished account is still an auth failure from
		// the caller's perspective; don't leak which sub-check failed. Any
		// other storage fault keeps propagating as a server error.
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired token")
		}
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}

	return user, nil
}

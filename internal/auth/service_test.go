// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskora/internal/auth"
	"github.com/taibuivan/taskora/internal/platform/apperr"
	"github.com/taibuivan/taskora/internal/platform/sec"
)

// # In-Memory Fakes

// memoryUserRepository is a map-backed UserRepository for unit tests. It
// mirrors the real store's contract: Create rejects duplicates with a
// Conflict, lookups miss with a NotFound.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by username
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return apperr.Conflict("Username is already taken")
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, exists := r.users[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// failingUserRepository simulates a storage backend that is down: every
// method returns the configured error.
type failingUserRepository struct {
	err error
}

func (r *failingUserRepository) Create(context.Context, *auth.User) error { return r.err }

func (r *failingUserRepository) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, r.err
}

func (r *failingUserRepository) FindByID(context.Context, string) (*auth.User, error) {
	return nil, r.err
}

// memoryDenylist is a map-backed TokenDenylist for unit tests.
type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memoryDenylist) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[signature] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, signature string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.revoked[signature]
	return exists, nil
}

// # Test Harness

func newTestService(t *testing.T, denylist auth.TokenDenylist) (*auth.Service, *memoryUserRepository, *sec.TokenService) {
	t.Helper()

	tokenSvc, err := sec.NewTokenService([]byte("service-test-secret"), "taskora.app", time.Hour)
	require.NoError(t, err)

	repo := newMemoryUserRepository()
	return auth.NewService(repo, tokenSvc, denylist), repo, tokenSvc
}

// # Registration

/*
TestService_Register verifies the happy path: validated input, hashed
credential, no token issued.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	// Stored as a bcrypt digest, never plaintext
	assert.NotEqual(t, "sunshine1", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("sunshine1", user.PasswordHash))
}

/*
TestService_Register_WeakPassword verifies the password policy is enforced
before anything touches storage.
*/
func TestService_Register_WeakPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too_short", "abc1"},
		{"letters_only", "abcdefgh"},
		{"digits_only", "12345678"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTestService(t, nil)

			_, err := service.Register(context.Background(), auth.RegisterInput{
				Username: "alice",
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			// Nothing persisted
			assert.Empty(t, repo.users)
		})
	}
}

/*
TestService_Register_UsernameRules verifies username length boundaries.
*/
func TestService_Register_UsernameRules(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "al",
		Password: "sunshine1",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "",
		Password: "sunshine1",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Register_Duplicate verifies that a taken username surfaces as a
Conflict, whether caught by the pre-check or the store constraint.
*/
func TestService_Register_Duplicate(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "different2",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Authentication

/*
TestService_Login verifies that valid credentials produce a verifiable token
bound to the account identity.
*/
func TestService_Login(t *testing.T) {
	service, _, tokenSvc := newTestService(t, nil)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Hour, session.ExpiresIn)
	assert.Equal(t, user.ID, session.User.ID)

	claims, err := tokenSvc.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

/*
TestService_Login_CollapsedFailure verifies that an unknown username and a
wrong password are indistinguishable from the caller's side.
*/
func TestService_Login_CollapsedFailure(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "wrongpass1",
	})
	require.Error(t, wrongPassErr)

	_, unknownUserErr := service.Login(context.Background(), auth.LoginInput{
		Username: "nobody",
		Password: "sunshine1",
	})
	require.Error(t, unknownUserErr)

	wrongPass := apperr.As(wrongPassErr)
	unknownUser := apperr.As(unknownUserErr)
	require.NotNil(t, wrongPass)
	require.NotNil(t, unknownUser)

	// Identical code, message, and status for both failure causes.
	assert.Equal(t, "UNAUTHORIZED", wrongPass.Code)
	assert.Equal(t, wrongPass.Code, unknownUser.Code)
	assert.Equal(t, wrongPass.Message, unknownUser.Message)
	assert.Equal(t, wrongPass.HTTPStatus, unknownUser.HTTPStatus)
}

/*
TestService_Login_StoreFailure verifies that an infrastructure fault during
login surfaces as a server error, never as the collapsed credential failure:
the caller's password is not wrong just because the database is down.
*/
func TestService_Login_StoreFailure(t *testing.T) {
	tokenSvc, err := sec.NewTokenService([]byte("service-test-secret"), "taskora.app", time.Hour)
	require.NoError(t, err)

	infraErr := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

	// A store that leaks a raw driver error: nothing client-facing comes out.
	service := auth.NewService(&failingUserRepository{err: infraErr}, tokenSvc, nil)
	_, err = service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, infraErr)
	assert.Nil(t, apperr.As(err))

	// A store that classifies the fault itself keeps the INTERNAL code — it
	// must not be re-collapsed into UNAUTHORIZED.
	service = auth.NewService(&failingUserRepository{err: apperr.Internal(infraErr)}, tokenSvc, nil)
	_, err = service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

/*
TestService_Profile_StoreFailure verifies the same discrimination for the
profile flow: only a vanished account reads as an auth failure.
*/
func TestService_Profile_StoreFailure(t *testing.T) {
	tokenSvc, err := sec.NewTokenService([]byte("service-test-secret"), "taskora.app", time.Hour)
	require.NoError(t, err)

	infraErr := apperr.Internal(errors.New("connection reset by peer"))
	service := auth.NewService(&failingUserRepository{err: infraErr}, tokenSvc, nil)

	_, err = service.Profile(context.Background(), "user-123")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}

// # Profile

/*
TestService_Profile verifies identity resolution from validated claims.
*/
func TestService_Profile(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	profile, err := service.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "alice", profile.Username)
}

/*
TestService_Profile_VanishedAccount verifies that a valid token for a
deleted account reads as an auth failure, not a distinct signal.
*/
func TestService_Profile_VanishedAccount(t *testing.T) {
	service, _, _ := newTestService(t, nil)

	_, err := service.Profile(context.Background(), "no-such-user")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

// # Logout & Revocation

/*
TestService_Logout_Stateless verifies that without a denylist, logout is a
silent no-op: the token stays valid until natural expiry.
*/
func TestService_Logout_Stateless(t *testing.T) {
	service, _, tokenSvc := newTestService(t, nil)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.AccessToken))

	// Replayed token is still cryptographically valid.
	verifier := auth.NewVerifier(tokenSvc, nil)
	_, err = verifier.VerifyToken(context.Background(), session.AccessToken)
	assert.NoError(t, err)
}

/*
TestService_Logout_Denylist verifies that with a denylist configured, a
logged-out token is rejected on replay while other tokens stay valid.
*/
func TestService_Logout_Denylist(t *testing.T) {
	denylist := newMemoryDenylist()
	service, _, tokenSvc := newTestService(t, denylist)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	first, err := service.Login(context.Background(), auth.LoginInput{
		Username: "alice",
		Password: "sunshine1",
	})
	require.NoError(t, err)

	verifier := auth.NewVerifier(tokenSvc, denylist)

	// Valid before logout
	_, err = verifier.VerifyToken(context.Background(), first.AccessToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), first.AccessToken))

	// Rejected after logout
	_, err = verifier.VerifyToken(context.Background(), first.AccessToken)
	assert.Error(t, err)

	// The denylist entry expires with the token's remaining life
	signature, err := sec.TokenSignature(first.AccessToken)
	require.NoError(t, err)
	ttl := denylist.revoked[signature]
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

/*
TestService_Logout_Idempotent verifies that garbage or replayed tokens make
logout succeed silently.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	denylist := newMemoryDenylist()
	service, _, _ := newTestService(t, denylist)

	// Garbage token: nothing to revoke, no error.
	require.NoError(t, service.Logout(context.Background(), "not-a-token"))
	assert.Empty(t, denylist.revoked)

	// Token signed by someone else: unverifiable, no error, no entry.
	foreignSvc, err := sec.NewTokenService([]byte("another-secret"), "taskora.app", time.Hour)
	require.NoError(t, err)
	foreignToken, err := foreignSvc.IssueAccessToken("user-x", "mallory")
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), foreignToken))
	assert.Empty(t, denylist.revoked)
}

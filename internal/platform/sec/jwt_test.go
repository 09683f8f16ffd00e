// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Internal test: the clock override on TokenService is unexported on purpose,
// so expiry scenarios are exercised here rather than from an external package.
package sec

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-signing-secret")

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	service, err := NewTokenService(testSecret, "taskora.app", time.Hour)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Validation verifies constructor guards.
*/
func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService(nil, "taskora.app", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, "taskora.app", 0)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, "taskora.app", -time.Minute)
	assert.Error(t, err)
}

/*
TestTokenService_Roundtrip verifies issuing and validating a token with the
same secret recovers the embedded identity.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "taskora.app", claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)

	// Expiry must be issuance + ttl
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, lifetime)
}

/*
TestTokenService_Expired verifies that a token past its expiry is rejected
against the wall clock.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	// Issue with a clock two hours in the past so the 1h ttl has elapsed.
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := service.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)

	// Verify with the real clock.
	service.now = time.Now
	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// flipSignature alters one byte of a compact JWS signature segment.
func flipSignature(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	signature := []byte(parts[2])
	if signature[0] == 'A' {
		signature[0] = 'B'
	} else {
		signature[0] = 'A'
	}
	return parts[0] + "." + parts[1] + "." + string(signature)
}

/*
TestTokenService_Tampered verifies that a token whose signature no longer
matches its content is rejected as a signature failure.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)

	_, err = service.VerifyToken(flipSignature(t, token))
	assert.ErrorIs(t, err, ErrTokenSignature)
}

/*
TestTokenService_WrongKey verifies that a token signed with a different
secret fails signature validation, never expiry.
*/
func TestTokenService_WrongKey(t *testing.T) {
	issuerSvc := newTestTokenService(t)

	otherSvc, err := NewTokenService([]byte("a-different-secret"), "taskora.app", time.Hour)
	require.NoError(t, err)

	token, err := issuerSvc.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)

	_, err = otherSvc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

/*
TestTokenService_SignaturePrecedence verifies that a token that is BOTH
tampered and expired reports the signature failure, not expiry.
*/
func TestTokenService_SignaturePrecedence(t *testing.T) {
	service := newTestTokenService(t)

	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := service.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)
	service.now = time.Now

	_, err = service.VerifyToken(flipSignature(t, token))
	assert.ErrorIs(t, err, ErrTokenSignature)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

/*
TestTokenService_WallClockExpiry verifies that expiry is judged against real
time, not issuance-relative arithmetic: a token claiming a future 'iat' with
a past 'exp' is still expired.
*/
func TestTokenService_WallClockExpiry(t *testing.T) {
	service := newTestTokenService(t)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "taskora.app",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID:   "user-123",
		Username: "alice",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

/*
TestTokenService_Malformed verifies rejection of strings that do not decode
into a JWS at all.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two_segments", "aaaa.bbbb"},
		{"four_segments", "aaaa.bbbb.cccc.dddd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

/*
TestTokenSignature verifies extraction of the JWS signature segment used as
the denylist key.
*/
func TestTokenSignature(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.IssueAccessToken("user-123", "alice")
	require.NoError(t, err)

	signature, err := TokenSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = TokenSignature("only.two")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = TokenSignature("a.b.")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext reaches the hasher.
var ErrEmptyPassword = errors.New("sec: password must not be empty")

// decoyDigest is computed once at startup. Login attempts against unknown
// usernames are verified against this digest so that both failure paths
// perform the same amount of bcrypt work.
var decoyDigest = func() string {
	digest, err := bcrypt.GenerateFromPassword([]byte("taskora-decoy-credential"), bcrypt.DefaultCost)
	if err != nil {
		panic("sec: failed to generate decoy digest: " + err.Error())
	}
	return string(digest)
}()

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// # Digest Format
//
// The returned digest is self-describing: bcrypt embeds the algorithm
// version, cost factor, and a fresh random salt, so hashing the same
// password twice never produces the same digest.
func HashPassword(plainTextPassword string) (string, error) {
	if plainTextPassword == "" {
		return "", ErrEmptyPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version
// using bcrypt's constant-time comparison.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if plainTextPassword == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// CheckPasswordDecoy burns one bcrypt verification against the decoy digest
// and always reports false.
//
// Callers invoke this on the unknown-username login path so its timing is
// indistinguishable from a wrong-password failure.
func CheckPasswordDecoy(plainTextPassword string) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(decoyDigest), []byte(plainTextPassword))
	return false
}

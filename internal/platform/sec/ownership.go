// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "errors"

// ErrOwnershipDenied is returned when a validated identity does not own the
// requested resource.
//
// # Presentation
//
// Consumers must surface this as NOT_FOUND, never as a distinct "forbidden"
// signal — revealing that a resource exists but belongs to someone else leaks
// information.
var ErrOwnershipDenied = errors.New("sec: resource owner mismatch")

// AuthorizeOwner is the single authorization rule of the system: access is
// granted iff the authenticated identity's user ID equals the resource's
// owner ID.
//
// # Contract
//
// It must be invoked strictly after token validation succeeds, and only with
// an owner ID loaded from storage — never one supplied by the client. It is a
// pure function; extending it into a general permission matrix is deferred
// until sharing actually becomes a requirement.
func AuthorizeOwner(identityUserID, resourceOwnerID string) error {
	if identityUserID == "" || identityUserID != resourceOwnerID {
		return ErrOwnershipDenied
	}
	return nil
}

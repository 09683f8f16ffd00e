// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task implements the personal to-do list domain.

Tasks are the system's owned resources: every record carries an immutable
OwnerID stamped from the creating identity, and every read, update, or delete
passes through the ownership guard before touching storage results.

# Architecture

  - Service: Orchestrates CRUD with the per-resource ownership rule.
  - Repository: Abstracted interface for PostgreSQL persistence.
  - Handler: RESTful JSON delivery, all routes behind authentication.
*/
package task

import "time"

// # Domain Entities

// Task represents a single to-do item belonging to exactly one user.
//
// # Invariants
//
// OwnerID is set once at creation from the authenticated identity — never
// from client input — and is never reassigned.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldIsCompleted = "is_completed"
	FieldCategory    = "category"
)

// # Constraints

const (
	// TitleMaxLen is the maximum accepted title length.
	TitleMaxLen = 100

	// CategoryMaxLen is the maximum accepted category length.
	CategoryMaxLen = 50
)

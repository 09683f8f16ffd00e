// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// # Task Data Access

// Repository defines the data access contract for tasks.
//
// # Ownership
//
// FindByID loads a task regardless of owner; the service layer is the single
// place that applies the ownership rule, strictly after token validation.
// ListByOwner is owner-scoped at the query level as an optimization, not as
// the enforcement point.
type Repository interface {

	/*
		Create persists a brand-new task.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, task *Task) error

	/*
		FindByID returns the task with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Task: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Task, error)

	/*
		ListByOwner returns all tasks belonging to ownerID, optionally
		filtered by category. An empty category means no filter.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - category: string

		Returns:
		  - []*Task: Possibly empty slice, newest first
		  - error: Database retrieval failures
	*/
	ListByOwner(context context.Context, ownerID, category string) ([]*Task, error)

	/*
		Update persists changes to a task's mutable fields.
		OwnerID is never part of the update set.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, task *Task) error

	/*
		Delete permanently removes a task by ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}

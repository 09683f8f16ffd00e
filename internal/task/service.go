// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/taskora/internal/platform/apperr"
	"github.com/taibuivan/taskora/internal/platform/sec"
	"github.com/taibuivan/taskora/internal/platform/validate"
	"github.com/taibuivan/taskora/pkg/uuidv7"
)

// Service implements the task CRUD use cases under the single-owner rule.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository) *Service {
	return &Service{repository: repo}
}

// # Inputs

// Input holds the client-controllable fields of a task. The owner is never
// part of it: creation stamps the authenticated identity unconditionally.
type Input struct {
	Title       string
	Description string
	IsCompleted bool
	Category    string
}

// validateInput applies the shared field rules for create and update.
func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		MaxLen(FieldCategory, input.Category, CategoryMaxLen)
	return validator.Err()
}

// # Use Cases

/*
List returns the caller's tasks, optionally filtered by category.

Description: The result set is scoped to the authenticated owner at the
query level; other users' tasks are invisible by construction.

Parameters:
  - context: context.Context
  - ownerID: string (from validated token claims)
  - category: string (empty means no filter)

Returns:
  - []*Task: Possibly empty slice
  - error: Storage failures
*/
func (service *Service) List(context context.Context, ownerID, category string) ([]*Task, error) {
	tasks, err := service.repository.ListByOwner(context, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("task_service_list_failed: %w", err)
	}
	return tasks, nil
}

/*
Create persists a new task owned by the caller.

Description: The ownership guard is not consulted on creation; instead the
creating identity's userID is stamped as the owner unconditionally, ignoring
any owner value a client might try to smuggle in.

Parameters:
  - context: context.Context
  - ownerID: string (from validated token claims)
  - input: Input

Returns:
  - *Task: Created entity
  - error: Validation or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input Input) (*Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task := &Task{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: input.IsCompleted,
		Category:    input.Category,
	}

	if err := service.repository.Create(context, task); err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	return task, nil
}

/*
Get returns a single task if and only if the caller owns it.

Description: Loads the task, then applies the ownership guard. A foreign
task and an absent task produce the identical NOT_FOUND response — the
system never reveals that a resource exists but belongs to someone else.

Parameters:
  - context: context.Context
  - ownerID: string (from validated token claims)
  - id: string

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound (absent OR foreign) or storage failures
*/
func (service *Service) Get(context context.Context, ownerID, id string) (*Task, error) {
	return service.loadOwned(context, ownerID, id)
}

/*
Update replaces a task's mutable fields if and only if the caller owns it.

Parameters:
  - context: context.Context
  - ownerID: string (from validated token claims)
  - id: string
  - input: Input

Returns:
  - *Task: Updated entity
  - error: Validation, apperr.NotFound (absent OR foreign), or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, input Input) (*Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	task, err := service.loadOwned(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.IsCompleted = input.IsCompleted
	task.Category = input.Category

	if err := service.repository.Update(context, task); err != nil {
		return nil, fmt.Errorf("task_service_update_failed: %w", err)
	}

	return task, nil
}

/*
Delete removes a task if and only if the caller owns it.

Parameters:
  - context: context.Context
  - ownerID: string (from validated token claims)
  - id: string

Returns:
  - error: apperr.NotFound (absent OR foreign) or storage failures
*/
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	task, err := service.loadOwned(context, ownerID, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, task.ID); err != nil {
		return fmt.Errorf("task_service_delete_failed: %w", err)
	}

	return nil
}

// loadOwned fetches a task and applies the ownership rule.
//
// The guard runs strictly after the identity has been validated upstream and
// compares against the owner loaded from storage, never a client value.
// Denial collapses into the same NOT_FOUND as a missing row.
func (service *Service) loadOwned(context context.Context, ownerID, id string) (*Task, error) {
	task, err := service.repository.FindByID(context, id)
	if err != nil {
		// Only a genuinely missing row reads as NOT_FOUND; storage faults
		// keep propagating as server errors.
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Task")
		}
		return nil, fmt.Errorf("task_service_load_failed: %w", err)
	}

	if err := sec.AuthorizeOwner(ownerID, task.OwnerID); err != nil {
		if errors.Is(err, sec.ErrOwnershipDenied) {
			return nil, apperr.NotFound("Task")
		}
		return nil, err
	}

	return task, nil
}

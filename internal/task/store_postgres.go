// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskora/internal/platform/constants"
	"github.com/taibuivan/taskora/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
//
// Every error path routes through [dberr.Wrap], so callers can rely on the
// NOT_FOUND / INTERNAL classification being accurate.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new task record into the tasks.task table.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: apperr.Internal on database faults
*/
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO ` + constants.SchemaTasks + `.task (
			id, owneruserid, title, description, iscompleted, category, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.Category,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_task_repo_create_failed: %w", err), "Task", "")
	}

	return nil
}

/*
FindByID retrieves a task record by its unique ID.

Description: Loads regardless of owner; the ownership rule is applied by the
service layer against the owner value returned here.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound when absent, apperr.Internal on database faults
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Task, error) {
	const query = `
		SELECT id, owneruserid, title, description, iscompleted, category, createdat, updatedat
		FROM ` + constants.SchemaTasks + `.task
		WHERE id = $1`

	task := &Task{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.Category,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_task_repo_find_by_id_failed: %w", err), "Task", "")
	}

	return task, nil
}

/*
ListByOwner retrieves all tasks for an owner, newest first, optionally
filtered by category.

Parameters:
  - context: context.Context
  - ownerID: string
  - category: string (empty means no filter)

Returns:
  - []*Task: Possibly empty slice
  - error: apperr.Internal on database faults
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID, category string) ([]*Task, error) {
	query := `
		SELECT id, owneruserid, title, description, iscompleted, category, createdat, updatedat
		FROM ` + constants.SchemaTasks + `.task
		WHERE owneruserid = $1`
	args := []any{ownerID}

	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_task_repo_list_failed: %w", err), "Task", "")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.IsCompleted,
			&task.Category,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres_task_repo_scan_failed: %w", err), "Task", "")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_task_repo_rows_failed: %w", err), "Task", "")
	}

	return tasks, nil
}

/*
Update persists changes to a task's mutable fields.

Description: OwnerID is deliberately excluded from the update set — the
owner is stamped once at creation and never reassigned.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: apperr.Internal on database faults
*/
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE ` + constants.SchemaTasks + `.task
		SET title = $2, description = $3, iscompleted = $4, category = $5, updatedat = $6
		WHERE id = $1`

	task.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		task.ID,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.Category,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_task_repo_update_failed: %w", err), "Task", "")
	}

	return nil
}

/*
Delete permanently removes a task record by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.Internal on database faults
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM ` + constants.SchemaTasks + `.task WHERE id = $1`
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_task_repo_delete_failed: %w", err), "Task", "")
	}
	return nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	// seq keeps list output in insertion order, matching the snapshot backends.
	const query = `
	SELECT id, user_id, title, status
	FROM tasks
	WHERE user_id = $1
	ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Status); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	const query = `SELECT id, user_id, title, status FROM tasks WHERE id = $1 AND user_id = $2`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, taskID, userID).Scan(&task.ID, &task.UserID, &task.Title, &task.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	const query = `INSERT INTO tasks (id, user_id, title, status) VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, query, task.ID, task.UserID, task.Title, task.Status); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	const query = `
	UPDATE tasks
	SET title = $3, status = $4
	WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, task.ID, task.UserID, task.Title, task.Status)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, taskID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, taskID, userID)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

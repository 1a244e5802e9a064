package repository

import (
	"context"

	"github.com/tasklight/backend/domain"
)

type TaskRepository interface {
	// ListByUser returns the caller's tasks in storage order. The result is
	// never nil.
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	// GetByOwner returns the task matching both ids, or domain.ErrTaskNotFound.
	GetByOwner(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	// Update replaces the stored task matching task.ID and task.UserID.
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, taskID string) error
}

package task

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns the caller's tasks in storage order, never nil.
func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := uc.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]domain.Task, 0)
	}
	return tasks, nil
}

// Create appends a new pending task owned by the caller.
func (uc *UseCase) Create(ctx context.Context, userID, title string) (*domain.Task, error) {
	if title == "" {
		return nil, domain.ErrMissingTitle
	}

	task := &domain.Task{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
		Status: domain.StatusPending,
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	uc.logger.Info("task created", zap.String("task_id", task.ID), zap.String("user_id", userID))
	return task, nil
}

// Update applies the supplied fields to the caller's task. An empty string is
// treated as absent, so fields can be changed but not cleared.
func (uc *UseCase) Update(ctx context.Context, userID, taskID, title, status string) (*domain.Task, error) {
	task, err := uc.tasks.GetByOwner(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		task.Title = title
	}
	if status != "" {
		task.Status = status
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the caller's task, failing with NotFound when no task
// matches both ids.
func (uc *UseCase) Delete(ctx context.Context, userID, taskID string) error {
	if err := uc.tasks.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.String("task_id", taskID), zap.String("user_id", userID))
	return nil
}

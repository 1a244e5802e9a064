package file

import (
	"context"
	"sync"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

const tasksCollection = "tasks"

type taskRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewTaskRepository returns a snapshot-file implementation of TaskRepository.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]domain.Task, 0)
	for _, task := range r.load() {
		if task.UserID == userID {
			owned = append(owned, task)
		}
	}
	return owned, nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.load() {
		if task.ID == taskID && task.UserID == userID {
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := append(r.load(), *task)
	if err := r.store.Save(tasksCollection, tasks); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.load()
	for i := range tasks {
		if tasks[i].ID == task.ID && tasks[i].UserID == task.UserID {
			tasks[i] = *task
			if err := r.store.Save(tasksCollection, tasks); err != nil {
				return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
			}
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *taskRepository) Delete(ctx context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := r.load()
	kept := tasks[:0]
	for _, task := range tasks {
		if task.ID == taskID && task.UserID == userID {
			continue
		}
		kept = append(kept, task)
	}
	if len(kept) == len(tasks) {
		return domain.ErrTaskNotFound
	}
	if err := r.store.Save(tasksCollection, kept); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

func (r *taskRepository) load() []domain.Task {
	var tasks []domain.Task
	_ = r.store.Load(tasksCollection, &tasks)
	return tasks
}

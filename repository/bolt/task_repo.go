package bolt

import (
	"context"
	"encoding/json"

	bboltlib "go.etcd.io/bbolt"

	"github.com/tasklight/backend/domain"
	boltInfra "github.com/tasklight/backend/internal/infrastructure/bolt"
	"github.com/tasklight/backend/repository"
)

// TasksBucket holds task records keyed by insertion sequence.
const TasksBucket = "tasks"

type taskRepository struct {
	store *boltInfra.Store
}

// NewTaskRepository returns a bbolt-backed implementation of TaskRepository.
func NewTaskRepository(store *boltInfra.Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	owned := make([]domain.Task, 0)
	err := r.store.View(func(tx *bboltlib.Tx) error {
		c := tx.Bucket([]byte(TasksBucket)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				continue
			}
			if task.UserID == userID {
				owned = append(owned, task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
	}
	return owned, nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	var found *domain.Task
	err := r.store.View(func(tx *bboltlib.Tx) error {
		_, task := locate(tx, userID, taskID)
		found = task
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "read tasks", err)
	}
	if found == nil {
		return nil, domain.ErrTaskNotFound
	}
	return found, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	err := r.store.Update(func(tx *bboltlib.Tx) error {
		bucket := tx.Bucket([]byte(TasksBucket))
		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put(sequenceKey(seq), payload)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.NewError(domain.ErrCodeInternal, "invalid task record")
	}

	err := r.store.Update(func(tx *bboltlib.Tx) error {
		key, existing := locate(tx, task.UserID, task.ID)
		if existing == nil {
			return domain.ErrTaskNotFound
		}
		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(TasksBucket)).Put(key, payload)
	})
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, taskID string) error {
	err := r.store.Update(func(tx *bboltlib.Tx) error {
		key, existing := locate(tx, userID, taskID)
		if existing == nil {
			return domain.ErrTaskNotFound
		}
		return tx.Bucket([]byte(TasksBucket)).Delete(key)
	})
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInternal, "persist tasks", err)
	}
	return nil
}

// locate scans for the task matching both ids and returns its bucket key.
func locate(tx *bboltlib.Tx, userID, taskID string) ([]byte, *domain.Task) {
	c := tx.Bucket([]byte(TasksBucket)).Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var task domain.Task
		if err := json.Unmarshal(v, &task); err != nil {
			continue
		}
		if task.ID == taskID && task.UserID == userID {
			key := append([]byte(nil), k...)
			return key, &task
		}
	}
	return nil, nil
}

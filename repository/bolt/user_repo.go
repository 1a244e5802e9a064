package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bboltlib "go.etcd.io/bbolt"

	"github.com/tasklight/backend/domain"
	boltInfra "github.com/tasklight/backend/internal/infrastructure/bolt"
	"github.com/tasklight/backend/repository"
)

// UsersBucket holds user records keyed by insertion sequence.
const UsersBucket = "users"

type userRepository struct {
	store *boltInfra.Store
}

// NewUserRepository returns a bbolt-backed implementation of UserRepository.
func NewUserRepository(store *boltInfra.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.NewError(domain.ErrCodeInternal, "invalid user record")
	}

	err := r.store.Update(func(tx *bboltlib.Tx) error {
		bucket := tx.Bucket([]byte(UsersBucket))

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var existing domain.User
			if err := json.Unmarshal(v, &existing); err != nil {
				continue
			}
			if existing.Username == user.Username {
				return domain.ErrUsernameTaken
			}
		}

		payload, err := json.Marshal(user)
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
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return err
		}
		return domain.WrapError(domain.ErrCodeInternal, "persist users", err)
	}
	return nil
}

func (r *userRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	var found *domain.User
	err := r.store.View(func(tx *bboltlib.Tx) error {
		c := tx.Bucket([]byte(UsersBucket)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var user domain.User
			if err := json.Unmarshal(v, &user); err != nil {
				continue
			}
			if match(&user) {
				found = &user
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "read users", err)
	}
	if found == nil {
		return nil, domain.ErrUserNotFound
	}
	return found, nil
}

// sequenceKey yields lexicographically ordered keys so cursor iteration
// preserves insertion order.
func sequenceKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%020d", seq))
}

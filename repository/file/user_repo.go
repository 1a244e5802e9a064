package file

import (
	"context"
	"sync"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

const usersCollection = "users"

type userRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewUserRepository returns a snapshot-file implementation of UserRepository.
// The mutex serializes read-modify-write cycles so two overlapping signups
// cannot drop each other's records.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.load() {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.load() {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.NewError(domain.ErrCodeInternal, "invalid user record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	for _, existing := range users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}

	users = append(users, *user)
	if err := r.store.Save(usersCollection, users); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "persist users", err)
	}
	return nil
}

func (r *userRepository) load() []domain.User {
	var users []domain.User
	_ = r.store.Load(usersCollection, &users)
	return users
}

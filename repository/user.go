package repository

import (
	"context"

	"github.com/tasklight/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByUsername matches the username exactly, case-sensitive.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create appends the user. Implementations enforce username uniqueness
	// and return domain.ErrUsernameTaken on a duplicate.
	Create(ctx context.Context, user *domain.User) error
}

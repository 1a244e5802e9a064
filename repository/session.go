package repository

import (
	"context"
	"time"

	"github.com/tasklight/backend/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// SessionPruner is implemented by session stores that cannot expire entries
// on their own and need a periodic sweep.
type SessionPruner interface {
	PruneExpired(ctx context.Context, now time.Time) (int, error)
}

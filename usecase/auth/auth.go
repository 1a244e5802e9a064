package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"go.uber.org/zap"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

// tokenBytes sizes the session token at 256 bits of entropy.
const tokenBytes = 32

type UseCase struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *zap.Logger
}

func New(sessions repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start opens a session for the user and returns it for cookie issuance.
func (uc *UseCase) Start(ctx context.Context, user *domain.User) (*domain.Session, error) {
	if user == nil || user.ID == "" {
		return nil, domain.NewError(domain.ErrCodeInternal, "invalid user")
	}

	token, err := newToken()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "generate session token", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:        token,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve returns the live session for a token. Expired sessions are removed
// on access and reported missing, enforcing the server-side lifetime.
func (uc *UseCase) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Destroy tears the session down. A storage failure surfaces so the caller
// can report that logout did not take effect.
func (uc *UseCase) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, token)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

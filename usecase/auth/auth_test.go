package auth

import (
	"context"
	"testing"
	"time"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository/memory"
)

func TestStartAndResolve(t *testing.T) {
	uc := New(memory.NewSessionRepository(), time.Hour, nil)
	ctx := context.Background()

	session, err := uc.Start(ctx, &domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected opaque token")
	}
	if session.UserID != "u1" || session.Username != "alice" {
		t.Fatalf("unexpected session: %+v", session)
	}

	resolved, err := uc.Resolve(ctx, session.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.UserID != "u1" {
		t.Fatalf("expected user u1, got %q", resolved.UserID)
	}
}

func TestTokensAreUnique(t *testing.T) {
	uc := New(memory.NewSessionRepository(), time.Hour, nil)
	ctx := context.Background()
	user := &domain.User{ID: "u1", Username: "alice"}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		session, err := uc.Start(ctx, user)
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if seen[session.ID] {
			t.Fatalf("duplicate token %q", session.ID)
		}
		seen[session.ID] = true
	}
}

func TestResolveExpiredSession(t *testing.T) {
	repo := memory.NewSessionRepository()
	uc := New(repo, time.Hour, nil)
	ctx := context.Background()

	stale := &domain.Session{
		ID:        "stale",
		UserID:    "u1",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := uc.Resolve(ctx, "stale")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Expired entry is removed on access.
	if _, err := repo.Get(ctx, "stale"); err == nil {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestResolveEmptyToken(t *testing.T) {
	uc := New(memory.NewSessionRepository(), time.Hour, nil)

	_, err := uc.Resolve(context.Background(), "")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDestroy(t *testing.T) {
	uc := New(memory.NewSessionRepository(), time.Hour, nil)
	ctx := context.Background()

	session, err := uc.Start(ctx, &domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := uc.Destroy(ctx, session.ID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := uc.Resolve(ctx, session.ID); err == nil {
		t.Fatal("expected resolve to fail after destroy")
	}

	// Destroying a missing or empty token is not an error.
	if err := uc.Destroy(ctx, ""); err != nil {
		t.Fatalf("Destroy empty: %v", err)
	}
}

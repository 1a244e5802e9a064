package memory

import (
	"context"
	"testing"
	"time"

	"github.com/tasklight/backend/domain"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := &domain.Session{
		ID:        "tok",
		UserID:    "u1",
		Username:  "alice",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "u1" || got.Username != "alice" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionRepositoryGetUnknown(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Get(context.Background(), "missing")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSessionRepositoryDeleteIdempotent(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, &domain.Session{ID: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "tok"); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestSessionRepositoryPruneExpired(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()
	now := time.Now()

	sessions := []domain.Session{
		{ID: "live", ExpiresAt: now.Add(time.Hour)},
		{ID: "stale", ExpiresAt: now.Add(-time.Minute)},
		{ID: "edge", ExpiresAt: now},
	}
	for i := range sessions {
		if err := repo.Save(ctx, &sessions[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	removed, err := repo.PruneExpired(ctx, now)
	if err != nil {
		t.Fatalf("PruneExpired: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, err := repo.Get(ctx, "live"); err != nil {
		t.Fatalf("live session should survive: %v", err)
	}
}

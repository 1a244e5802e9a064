package file

import (
	"context"
	"testing"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewUserRepository(store)
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user := &domain.User{ID: "u1", Username: "alice", Password: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("got username %q", byID.Username)
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName.ID != "u1" {
		t.Fatalf("got id %q", byName.ID)
	}
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, &domain.User{ID: "u2", Username: "alice"})
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserRepositoryUsernameCaseSensitive(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A case variant is a different username.
	if err := repo.Create(ctx, &domain.User{ID: "u2", Username: "Alice"}); err != nil {
		t.Fatalf("Create case variant: %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "ALICE"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepositoryGetUnknown(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tasklight/backend/domain"
	boltInfra "github.com/tasklight/backend/internal/infrastructure/bolt"
	"github.com/tasklight/backend/repository"
)

func newBoltTaskRepo(t *testing.T) repository.TaskRepository {
	t.Helper()
	store, err := boltInfra.Open(filepath.Join(t.TempDir(), "test.db"), TasksBucket)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewTaskRepository(store)
}

func TestBoltTaskRepositoryInsertionOrder(t *testing.T) {
	repo := newBoltTaskRepo(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		task := &domain.Task{ID: string(rune('a' + i)), UserID: "alice", Title: title, Status: "pending"}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	tasks, err := repo.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, title := range titles {
		if tasks[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
	}
}

func TestBoltTaskRepositoryOwnershipScoping(t *testing.T) {
	repo := newBoltTaskRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "mine", Status: "pending"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetByOwner(ctx, "bob", "t1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("GetByOwner foreign: expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, "bob", "t1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("Delete foreign: expected not found, got %v", err)
	}

	tasks, err := repo.ListByUser(ctx, "bob")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks for bob, got %d", len(tasks))
	}
}

func TestBoltTaskRepositoryUpdateAndDelete(t *testing.T) {
	repo := newBoltTaskRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "draft", Status: "pending"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Update(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "final", Status: "done"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByOwner(ctx, "alice", "t1")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Title != "final" || got.Status != "done" {
		t.Fatalf("unexpected task after update: %+v", got)
	}

	if err := repo.Delete(ctx, "alice", "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "alice", "t1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second Delete: expected not found, got %v", err)
	}
}

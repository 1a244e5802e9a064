package file

import (
	"context"
	"testing"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository"
)

func newTaskRepo(t *testing.T) repository.TaskRepository {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewTaskRepository(store)
}

func TestTaskRepositoryListScopedToOwner(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	seed := []domain.Task{
		{ID: "t1", UserID: "alice", Title: "first", Status: "pending"},
		{ID: "t2", UserID: "bob", Title: "other", Status: "pending"},
		{ID: "t3", UserID: "alice", Title: "second", Status: "pending"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tasks, err := repo.ListByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	// Storage order is insertion order.
	if tasks[0].ID != "t1" || tasks[1].ID != "t3" {
		t.Fatalf("unexpected order: %+v", tasks)
	}
}

func TestTaskRepositoryListEmptyIsNotNil(t *testing.T) {
	repo := newTaskRepo(t)

	tasks, err := repo.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if tasks == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestTaskRepositoryUpdateOwnedOnly(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "mine", Status: "pending"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Update(ctx, &domain.Task{ID: "t1", UserID: "bob", Title: "hijack", Status: "done"})
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}

	if err := repo.Update(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "mine", Status: "done"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByOwner(ctx, "alice", "t1")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Status != "done" {
		t.Fatalf("expected status done, got %q", got.Status)
	}
}

func TestTaskRepositoryDeleteTwice(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "once", Status: "pending"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "alice", "t1"); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := repo.Delete(ctx, "alice", "t1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("second Delete: expected not found, got %v", err)
	}
}

func TestTaskRepositoryDeleteForeignOwner(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Task{ID: "t1", UserID: "alice", Title: "mine", Status: "pending"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "bob", "t1"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}
	if _, err := repo.GetByOwner(ctx, "alice", "t1"); err != nil {
		t.Fatalf("task should still exist: %v", err)
	}
}

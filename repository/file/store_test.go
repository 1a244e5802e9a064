package file

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tasklight/backend/domain"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	var tasks []domain.Task
	if err := store.Load("tasks", &tasks); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(tasks))
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt snapshot: %v", err)
	}

	var tasks []domain.Task
	if err := store.Load("tasks", &tasks); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("corrupt snapshot should read as empty, got %d records", len(tasks))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	want := []domain.Task{
		{ID: "t1", UserID: "u1", Title: "buy milk", Status: "pending"},
		{ID: "t2", UserID: "u2", Title: "walk dog", Status: "done"},
	}
	if err := store.Save("tasks", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got []domain.Task
	if err := store.Load("tasks", &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Save("users", []domain.User{{ID: "u1", Username: "alice"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save("users", []domain.User{{ID: "u2", Username: "bob"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var users []domain.User
	if err := store.Load("users", &users); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("expected snapshot to be fully replaced, got %+v", users)
	}
}

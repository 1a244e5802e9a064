package account

import (
	"context"
	"testing"

	"github.com/tasklight/backend/domain"
	"github.com/tasklight/backend/repository/file"
)

func newUseCase(t *testing.T) *UseCase {
	t.Helper()
	store, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(file.NewUserRepository(store), nil)
}

func TestRegisterMissingCredentials(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"", ""},
		{"alice", ""},
		{"", "secret"},
	} {
		_, err := uc.Register(ctx, tc.username, tc.password)
		if !domain.IsDomainError(err, domain.ErrCodeValidation) {
			t.Fatalf("Register(%q, %q): expected validation error, got %v", tc.username, tc.password, err)
		}
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	uc := newUseCase(t)

	user, err := uc.Register(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.Password == "secret" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := uc.Register(ctx, "alice", "other")
	if !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	registered, err := uc.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := uc.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
	}
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPassword := uc.Authenticate(ctx, "alice", "nope")
	_, unknownUser := uc.Authenticate(ctx, "mallory", "secret")

	if !domain.IsDomainError(wrongPassword, domain.ErrCodeUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", wrongPassword)
	}
	if !domain.IsDomainError(unknownUser, domain.ErrCodeUnauthorized) {
		t.Fatalf("unknown user: expected unauthorized, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure modes must be indistinguishable: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestAuthenticateCaseSensitiveUsername(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "Alice", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := uc.Authenticate(ctx, "alice", "secret")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized for case mismatch, got %v", err)
	}
}

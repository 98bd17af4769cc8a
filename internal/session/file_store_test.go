package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"projectboard/internal/model"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
}

func TestFileStore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, ok := store.Token(ctx); ok {
		t.Fatal("expected no token in a fresh store")
	}

	if err := store.SetToken(ctx, "tok1"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	token, ok := store.Token(ctx)
	if !ok || token != "tok1" {
		t.Fatalf("Token = %q, %v; want tok1, true", token, ok)
	}
}

func TestFileStore_UserRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	in := &model.User{Name: "A", Email: "a@b.com", Milestone: "M1"}
	if err := store.SetUser(ctx, in); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	out, ok := store.User(ctx)
	if !ok {
		t.Fatal("expected stored user")
	}
	if out.Name != in.Name || out.Email != in.Email || out.Milestone != in.Milestone {
		t.Fatalf("round trip changed user: got %+v", out)
	}
}

func TestFileStore_MalformedUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path, zap.NewNop())

	// A token plus an unparseable user blob must read as "no profile",
	// never an error escaping the store boundary.
	if err := os.WriteFile(path, []byte(`{"token":"tok1","user":"{not json"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Token(ctx); !ok {
		t.Fatal("token should still be readable")
	}
	if u, ok := store.User(ctx); ok || u != nil {
		t.Fatalf("malformed user should be absent, got %+v", u)
	}
}

func TestFileStore_ClearRemovesBoth(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SetToken(ctx, "tok1"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetUser(ctx, &model.User{Name: "A"}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Token(ctx); ok {
		t.Fatal("token survived Clear")
	}
	if _, ok := store.User(ctx); ok {
		t.Fatal("user survived Clear")
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

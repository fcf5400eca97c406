package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/tix/internal/shared"
)

// storeContract runs the behavior shared by every Store implementation.
func storeContract(t *testing.T, store Store) {
	t.Helper()

	t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get("absent")
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		if err := store.Set(AuthTokenKey, "tok-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := store.Get(AuthTokenKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "tok-1" {
			t.Errorf("got %q, want tok-1", got)
		}
	})

	t.Run("set overwrites the previous value", func(t *testing.T) {
		store.Set(AuthUserKey, "Ada")
		store.Set(AuthUserKey, "Grace")

		got, err := store.Get(AuthUserKey)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Grace" {
			t.Errorf("got %q, want Grace", got)
		}
	})

	t.Run("delete removes the value", func(t *testing.T) {
		store.Set("ephemeral", "v")
		if err := store.Delete("ephemeral"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := store.Get("ephemeral"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("deleting an absent key is not an error", func(t *testing.T) {
		if err := store.Delete("never-set"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestCredentialStore(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	storeContract(t, NewCredentialStore(db))
}

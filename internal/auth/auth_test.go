package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/tix/internal/repositories"
	"github.com/desertthunder/tix/internal/services"
	tu "github.com/desertthunder/tix/internal/testing"
)

// failingStore rejects all writes to exercise persistence failures.
type failingStore struct {
	repositories.MemoryStore
}

func (s *failingStore) Set(key, value string) error {
	return errors.New("disk full")
}

func TestManager_Initialize(t *testing.T) {
	t.Run("empty store starts anonymous", func(t *testing.T) {
		m := NewManager(repositories.NewMemoryStore(), &tu.MockAuthService{}, nil)

		if m.State() != Anonymous {
			t.Errorf("expected anonymous, got %s", m.State())
		}
		if m.IsAuthenticated() {
			t.Error("expected not authenticated")
		}
	})

	t.Run("stored token restores the session without network calls", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		store.Set(repositories.AuthTokenKey, "persisted-token")
		store.Set(repositories.AuthUserKey, "Ada")

		api := &tu.MockAuthService{}
		m := NewManager(store, api, nil)

		if !m.IsAuthenticated() {
			t.Fatal("expected authenticated from stored token")
		}
		if m.Token() != "persisted-token" {
			t.Errorf("got token %q", m.Token())
		}
		if m.User() != "Ada" {
			t.Errorf("got user %q", m.User())
		}
		if api.CSRFCalls != 0 || api.LoginCalls != 0 {
			t.Error("expected no network calls during initialization")
		}
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login persists the token", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		api := &tu.MockAuthService{
			LoginResp: &services.AuthResponse{
				Token: "fresh-token",
				User:  &services.User{Name: "Ada"},
			},
		}
		m := NewManager(store, api, nil)

		if err := m.Login(ctx, services.Credentials{Email: "ada@example.com", Password: "pw"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !m.IsAuthenticated() {
			t.Error("expected authenticated state")
		}
		if m.Token() != "fresh-token" {
			t.Errorf("got token %q", m.Token())
		}
		if stored, err := store.Get(repositories.AuthTokenKey); err != nil || stored != "fresh-token" {
			t.Errorf("expected token persisted, got %q (%v)", stored, err)
		}
		if api.CSRFCalls != 1 {
			t.Errorf("expected one CSRF pre-flight, got %d", api.CSRFCalls)
		}
	})

	t.Run("csrf pre-flight failure aborts before login", func(t *testing.T) {
		api := &tu.MockAuthService{CSRFErr: errors.New("network down")}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		err := m.Login(ctx, services.Credentials{Email: "ada@example.com", Password: "pw"})
		if err == nil {
			t.Fatal("expected error")
		}

		if api.LoginCalls != 0 {
			t.Errorf("login must not be attempted after pre-flight failure, got %d calls", api.LoginCalls)
		}
		if m.State() != Anonymous {
			t.Errorf("expected state restored to anonymous, got %s", m.State())
		}
	})

	t.Run("rejected credentials restore prior state", func(t *testing.T) {
		api := &tu.MockAuthService{LoginErr: errors.New("invalid credentials")}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.Login(ctx, services.Credentials{}); err == nil {
			t.Fatal("expected error")
		}
		if m.State() != Anonymous {
			t.Errorf("expected anonymous, got %s", m.State())
		}
	})

	t.Run("response without token is a failure", func(t *testing.T) {
		api := &tu.MockAuthService{LoginResp: &services.AuthResponse{Message: "ok"}}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.Login(ctx, services.Credentials{}); err == nil {
			t.Fatal("expected error for tokenless response")
		}
		if m.IsAuthenticated() {
			t.Error("expected not authenticated")
		}
	})

	t.Run("persistence failure surfaces", func(t *testing.T) {
		api := &tu.MockAuthService{LoginResp: &services.AuthResponse{Token: "tok"}}
		m := NewManager(&failingStore{}, api, nil)

		if err := m.Login(ctx, services.Credentials{}); err == nil {
			t.Fatal("expected error when token cannot be persisted")
		}
	})
}

func TestManager_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("transitions only when the response carries a token", func(t *testing.T) {
		api := &tu.MockAuthService{LoginResp: &services.AuthResponse{Message: "created"}}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.Register(ctx, services.Credentials{Name: "Ada"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.IsAuthenticated() {
			t.Error("expected anonymous after registration without token")
		}
	})

	t.Run("auto-authenticates when a token is returned", func(t *testing.T) {
		api := &tu.MockAuthService{LoginResp: &services.AuthResponse{Token: "tok"}}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.Register(ctx, services.Credentials{Name: "Ada"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.IsAuthenticated() {
			t.Error("expected authenticated after registration with token")
		}
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears local state and storage", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		store.Set(repositories.AuthTokenKey, "tok")
		m := NewManager(store, &tu.MockAuthService{}, nil)

		if err := m.Logout(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.IsAuthenticated() {
			t.Error("expected anonymous after logout")
		}
		if _, err := store.Get(repositories.AuthTokenKey); !errors.Is(err, repositories.ErrKeyNotFound) {
			t.Error("expected stored token removed")
		}
	})

	t.Run("clears locally even when the server call fails", func(t *testing.T) {
		store := repositories.NewMemoryStore()
		store.Set(repositories.AuthTokenKey, "tok")
		serverErr := errors.New("server unreachable")
		m := NewManager(store, &tu.MockAuthService{LogoutErr: serverErr}, nil)

		err := m.Logout(ctx)
		if !errors.Is(err, serverErr) {
			t.Errorf("expected server error surfaced, got %v", err)
		}

		if m.IsAuthenticated() {
			t.Error("expected anonymous despite server failure")
		}
		if m.Token() != "" {
			t.Error("expected token cleared")
		}
		if _, err := store.Get(repositories.AuthTokenKey); !errors.Is(err, repositories.ErrKeyNotFound) {
			t.Error("expected stored token removed")
		}
	})

	t.Run("anonymous logout skips the server", func(t *testing.T) {
		api := &tu.MockAuthService{LogoutErr: errors.New("should not be called")}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.Logout(ctx); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})
}

func TestManager_LoginWithQRToken(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges the token", func(t *testing.T) {
		api := &tu.MockAuthService{LoginResp: &services.AuthResponse{Token: "qr-tok"}}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.LoginWithQRToken(ctx, "scanned"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Token() != "qr-tok" {
			t.Errorf("got token %q", m.Token())
		}
	})

	t.Run("failed exchange restores state", func(t *testing.T) {
		api := &tu.MockAuthService{LoginErr: errors.New("expired")}
		m := NewManager(repositories.NewMemoryStore(), api, nil)

		if err := m.LoginWithQRToken(ctx, "stale"); err == nil {
			t.Fatal("expected error")
		}
		if m.State() != Anonymous {
			t.Errorf("expected anonymous, got %s", m.State())
		}
	})
}

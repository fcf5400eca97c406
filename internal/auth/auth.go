// package auth owns the client-side authentication lifecycle.
//
// The Manager is the single source of truth for "is this user signed in"
// and the custodian of the bearer token. State transitions write through
// the persistence port synchronously, so a crash never leaves the stored
// token out of step with the in-memory copy.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tix/internal/repositories"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
)

// State enumerates the authentication lifecycle.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager owns authentication state and the token lifecycle.
//
// A persisted token is trusted at startup without server verification; a
// revoked token surfaces as an API error on the next privileged request.
type Manager struct {
	store  repositories.Store
	api    services.AuthService
	logger *log.Logger

	state State
	token string
	user  string
}

// NewManager creates a Manager over the given persistence port and auth
// endpoints, then reads persisted state. No network calls are made: a
// stored token means the last session ended signed in.
func NewManager(store repositories.Store, api services.AuthService, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := &Manager{
		store:  store,
		api:    api,
		logger: logger,
		state:  Anonymous,
	}
	m.Initialize()

	return m
}

// Initialize derives the starting state from the persistence port.
func (m *Manager) Initialize() {
	token, err := m.store.Get(repositories.AuthTokenKey)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			m.logger.Warnf("failed to read stored token: %v", err)
		}
		m.state = Anonymous
		m.token = ""
		m.user = ""
		return
	}

	m.token = token
	m.state = Authenticated

	if user, err := m.store.Get(repositories.AuthUserKey); err == nil {
		m.user = user
	}
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.state == Authenticated
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Token returns the current bearer token, empty when anonymous. Wire this
// into [services.BearerTransform] so privileged requests carry it.
func (m *Manager) Token() string {
	return m.token
}

// User returns the cached display identity, empty when unknown.
func (m *Manager) User() string {
	return m.user
}

// Login runs the CSRF pre-flight, then exchanges credentials for a token.
//
// A pre-flight failure aborts the attempt before /login is ever issued and
// leaves the state unchanged. Errors are surfaced, never retried.
func (m *Manager) Login(ctx context.Context, creds services.Credentials) error {
	prev := m.state
	m.state = Authenticating

	if err := m.api.AcquireCSRFCookie(ctx); err != nil {
		m.state = prev
		return err
	}

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.state = prev
		return err
	}

	if resp.Token == "" {
		m.state = prev
		return fmt.Errorf("%w: login response carried no token", shared.ErrAuthFailed)
	}

	if err := m.LoginSuccess(resp.Token); err != nil {
		return err
	}
	if resp.User != nil {
		m.SetUser(resp.User.Name)
	}

	return nil
}

// Register runs the CSRF pre-flight, then creates an account.
//
// The platform does not auto-authenticate new accounts; state transitions
// only when the response carries a token anyway.
func (m *Manager) Register(ctx context.Context, creds services.Credentials) error {
	if err := m.api.AcquireCSRFCookie(ctx); err != nil {
		return err
	}

	resp, err := m.api.Register(ctx, creds)
	if err != nil {
		return err
	}

	if resp.Token != "" {
		if err := m.LoginSuccess(resp.Token); err != nil {
			return err
		}
		if resp.User != nil {
			m.SetUser(resp.User.Name)
		}
	}

	return nil
}

// LoginWithQRToken exchanges a scanned QR token. Same success path as Login.
func (m *Manager) LoginWithQRToken(ctx context.Context, token string) error {
	prev := m.state
	m.state = Authenticating

	resp, err := m.api.LoginWithQR(ctx, token)
	if err != nil {
		m.state = prev
		return err
	}

	if resp.Token == "" {
		m.state = prev
		return fmt.Errorf("%w: qr exchange carried no token", shared.ErrAuthFailed)
	}

	if err := m.LoginSuccess(resp.Token); err != nil {
		return err
	}
	if resp.User != nil {
		m.SetUser(resp.User.Name)
	}

	return nil
}

// LoginSuccess persists the token and marks the session authenticated.
// Idempotent.
func (m *Manager) LoginSuccess(token string) error {
	if err := m.store.Set(repositories.AuthTokenKey, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.token = token
	m.state = Authenticated
	return nil
}

// SetUser caches and persists the display identity.
func (m *Manager) SetUser(name string) {
	m.user = name
	if err := m.store.Set(repositories.AuthUserKey, name); err != nil {
		m.logger.Warnf("failed to persist user identity: %v", err)
	}
}

// Logout notifies the server best-effort, then clears local state
// unconditionally: the contract is "this client is signed out" regardless
// of the network outcome.
func (m *Manager) Logout(ctx context.Context) error {
	var serverErr error
	if m.token != "" {
		if serverErr = m.api.Logout(ctx); serverErr != nil {
			m.logger.Warnf("server logout failed, clearing local session anyway: %v", serverErr)
		}
	}

	if err := m.store.Delete(repositories.AuthTokenKey); err != nil {
		m.logger.Warnf("failed to remove stored token: %v", err)
	}
	if err := m.store.Delete(repositories.AuthUserKey); err != nil {
		m.logger.Warnf("failed to remove stored identity: %v", err)
	}

	m.token = ""
	m.user = ""
	m.state = Anonymous

	return serverErr
}

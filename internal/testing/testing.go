// package testing contains shared test doubles
package testing

import (
	"context"
	"errors"
	"io"

	"github.com/desertthunder/tix/internal/services"
)

// MockAuthService is a test double for [services.AuthService]
type MockAuthService struct {
	CSRFErr    error
	LoginResp  *services.AuthResponse
	LoginErr   error
	LogoutErr  error
	CSRFCalls  int
	LoginCalls int
}

func (m *MockAuthService) AcquireCSRFCookie(ctx context.Context) error {
	m.CSRFCalls++
	return m.CSRFErr
}

func (m *MockAuthService) Login(ctx context.Context, creds services.Credentials) (*services.AuthResponse, error) {
	m.LoginCalls++
	return m.LoginResp, m.LoginErr
}

func (m *MockAuthService) Register(ctx context.Context, creds services.Credentials) (*services.AuthResponse, error) {
	m.LoginCalls++
	return m.LoginResp, m.LoginErr
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.LogoutErr
}

func (m *MockAuthService) LoginWithQR(ctx context.Context, token string) (*services.AuthResponse, error) {
	m.LoginCalls++
	return m.LoginResp, m.LoginErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// package services implements the typed gateway to the ticketing platform API.
//
// One method per backend operation. Transport faults and API error payloads
// are both surfaced as a normalized [*APIError]; callers never parse raw
// responses.
package services

import "context"

// AuthService is the slice of the gateway consumed by the session manager:
// the CSRF pre-flight plus the credential-exchange endpoints.
type AuthService interface {
	// AcquireCSRFCookie performs the credentialed pre-flight GET. The
	// server's Set-Cookie side effect lands in the client's cookie jar and
	// must complete before any credential exchange.
	AcquireCSRFCookie(ctx context.Context) error

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (*AuthResponse, error)

	// Register creates an account. The response carries a token only when
	// the platform auto-authenticates new accounts.
	Register(ctx context.Context, creds Credentials) (*AuthResponse, error)

	// Logout notifies the server that the current token should be revoked.
	Logout(ctx context.Context) error

	// LoginWithQR exchanges a scanned QR token for a bearer token.
	LoginWithQR(ctx context.Context, token string) (*AuthResponse, error)
}

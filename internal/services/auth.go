// Credential-exchange endpoints.
package services

import (
	"context"
	"net/http"
)

// Credentials is the request body for login and registration.
type Credentials struct {
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// AuthResponse is the payload of a successful credential exchange.
//
// Registration responses may omit the token when the platform does not
// auto-authenticate new accounts.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// QRToken is a short-lived token issued for QR sign-in on another device.
type QRToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// googleRedirect is the payload of the OAuth redirect-URL endpoint.
type googleRedirect struct {
	URL string `json:"url"`
}

// Login exchanges credentials for a bearer token.
//
// Callers must run [Client.AcquireCSRFCookie] first; the server rejects the
// POST without the double-submit cookie.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doAnonymous(ctx, http.MethodPost, "/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. Same CSRF requirement as [Client.Login].
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doAnonymous(ctx, http.MethodPost, "/register", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the current token server-side. The bearer token is attached
// by the client's transforms.
func (c *Client) Logout(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/logout", nil, nil)
}

// LoginWithQR exchanges a scanned QR token for a bearer token.
func (c *Client) LoginWithQR(ctx context.Context, token string) (*AuthResponse, error) {
	body := map[string]string{"token": token}

	var resp AuthResponse
	if err := c.doAnonymous(ctx, http.MethodPost, "/login/qr", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GoogleRedirectURL fetches the platform's Google OAuth redirect URL.
func (c *Client) GoogleRedirectURL(ctx context.Context) (string, error) {
	var resp googleRedirect
	if err := c.doAnonymous(ctx, http.MethodGet, "/auth/google/redirect", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// GoogleLogin exchanges a Google access token for a platform bearer token.
// Used by the CLI sign-in flow after the local authorization-code exchange.
func (c *Client) GoogleLogin(ctx context.Context, accessToken string) (*AuthResponse, error) {
	body := map[string]string{"token": accessToken}

	var resp AuthResponse
	if err := c.doAnonymous(ctx, http.MethodPost, "/auth/google/callback", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IssueQRToken requests a QR sign-in token for the authenticated user.
func (c *Client) IssueQRToken(ctx context.Context) (*QRToken, error) {
	var resp QRToken
	if err := c.doRequest(ctx, http.MethodGet, "/qr-token", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

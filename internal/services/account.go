// Profile management endpoints.
package services

import (
	"context"
	"net/http"
)

// User represents the authenticated user's profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileUpdate is the request body for profile changes.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PasswordUpdate is the request body for password changes.
type PasswordUpdate struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile submits profile changes for the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodPost, "/user/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword submits a password change for the authenticated user.
func (c *Client) ChangePassword(ctx context.Context, update PasswordUpdate) error {
	return c.doRequest(ctx, http.MethodPost, "/user/password", update, nil)
}

package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrCSRFPreflight    = fmt.Errorf("csrf pre-flight failed")
	ErrTokenMissing     = fmt.Errorf("no auth token present")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")
	ErrMovieNotFound      = fmt.Errorf("movie not found")
	ErrSessionNotFound    = fmt.Errorf("session not found")

	// Cart errors
	ErrEmptyCart     = fmt.Errorf("cart is empty")
	ErrNoSession     = fmt.Errorf("cart has no session")
	ErrInvalidAmount = fmt.Errorf("invalid amount")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

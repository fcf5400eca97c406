// Ticketing platform HTTP client.
//
// Wraps one [http.Client] with a cookie jar (the CSRF double-submit cookie
// lives there), request transforms for credential injection, and error
// normalization shared by every endpoint method.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tix/internal/shared"
)

const (
	defaultBaseURL    = "http://api.example.camelot/api"
	defaultSanctumURL = "http://example.camelot/sanctum/csrf-cookie"

	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

// RequestTransform mutates an outgoing request before it is sent.
// Used to attach the bearer token without endpoint methods managing headers.
type RequestTransform func(*http.Request)

// BearerTransform returns a [RequestTransform] that attaches the token
// produced by source as an Authorization header. A source returning an empty
// string leaves the request untouched.
func BearerTransform(source func() string) RequestTransform {
	return func(req *http.Request) {
		if token := source(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// RequestIDTransform returns a [RequestTransform] that tags each authorized
// request with a unique X-Request-ID header for log correlation.
func RequestIDTransform() RequestTransform {
	return func(req *http.Request) {
		req.Header.Set("X-Request-ID", shared.GenerateID())
	}
}

// APIError is the normalized error for every failed gateway call.
//
// Message comes from the response body when the server produced one,
// otherwise from the transport fault. Details carries the per-field
// validation payload when present.
type APIError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client is the gateway to the ticketing platform API.
type Client struct {
	baseURL    string
	sanctumURL string
	httpClient *http.Client
	transforms []RequestTransform
	logger     *log.Logger
}

// NewClient creates a gateway client for the given API base URL and CSRF
// pre-flight URL. The HTTP client defaults to one with a fresh cookie jar;
// a provided client without a jar gets one, since the CSRF handshake depends
// on cookie propagation.
func NewClient(baseURL, sanctumURL string, client *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if sanctumURL == "" {
		sanctumURL = defaultSanctumURL
	}
	if client == nil {
		client = &http.Client{}
	}
	if client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err == nil {
			client.Jar = jar
		}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		sanctumURL: sanctumURL,
		httpClient: client,
		logger:     logger,
	}
}

// Use appends request transforms applied to every authorized request.
func (c *Client) Use(transforms ...RequestTransform) {
	c.transforms = append(c.transforms, transforms...)
}

// AcquireCSRFCookie performs the credentialed pre-flight GET against the
// sanctum endpoint. The response's Set-Cookie lands in the client's jar;
// subsequent state-changing requests echo it back via header.
func (c *Client) AcquireCSRFCookie(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sanctumURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCSRFPreflight, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCSRFPreflight, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrCSRFPreflight, resp.StatusCode)
	}

	return nil
}

// doRequest performs an authorized request: all registered transforms run
// before the request is sent.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	for _, transform := range c.transforms {
		transform(req)
	}

	return c.send(req, result)
}

// doAnonymous performs a request without credential transforms. The CSRF
// pre-flight and the credential-exchange endpoints use this path.
func (c *Client) doAnonymous(ctx context.Context, method, endpoint string, body, result any) error {
	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.send(req, result)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if method != http.MethodGet {
		c.attachXSRFHeader(req)
	}

	return req, nil
}

// attachXSRFHeader echoes the pre-flight cookie back as a header, completing
// the double-submit check on state-changing requests.
func (c *Client) attachXSRFHeader(req *http.Request) {
	if c.httpClient.Jar == nil {
		return
	}

	for _, cookie := range c.httpClient.Jar.Cookies(req.URL) {
		if cookie.Name != xsrfCookieName {
			continue
		}
		if value, err := url.QueryUnescape(cookie.Value); err == nil {
			req.Header.Set(xsrfHeaderName, value)
		} else {
			req.Header.Set(xsrfHeaderName, cookie.Value)
		}
		return
	}
}

// send executes the request and decodes the payload into result on 2xx.
// Failures are logged and rethrown as a normalized [*APIError].
func (c *Client) send(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugf("request failed: %s %s: %v", req.Method, req.URL.Path, err)
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debugf("api error: %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
		return normalizeError(resp.StatusCode, data)
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}

	return nil
}

// normalizeError builds an [*APIError] from the response body when the
// server produced one, else from the bare status.
func normalizeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err == nil && apiErr.Message != "" {
			return apiErr
		}
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		apiErr.Message = trimmed
	} else {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

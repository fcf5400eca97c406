package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"golang.org/x/oauth2"
)

const callbackPath = "/callback"

// CallbackResult is the outcome of the authorization redirect.
type CallbackResult struct {
	Token *oauth2.Token
	Err   error
}

// CallbackHandler completes the authorization-code exchange when the
// provider redirects back to the local server.
//
// The state token must match the one embedded in the authorization URL;
// a mismatch fails the flow. Only the first redirect is processed.
type CallbackHandler struct {
	config  *oauth2.Config
	state   string
	handled atomic.Bool
	once    sync.Once
	result  chan CallbackResult
}

// NewCallbackHandler creates a handler for the given OAuth2 config and state token.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config: config,
		state:  state,
		result: make(chan CallbackResult, 1),
	}
}

// Result returns the channel carrying the flow's single outcome.
// The channel is closed after delivery.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.result
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.handled.CompareAndSwap(false, true) {
		http.Error(w, "callback already processed", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.deliver(CallbackResult{Err: fmt.Errorf("state mismatch in callback")})
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.deliver(CallbackResult{Err: fmt.Errorf(
			"authorization denied: %s (%s)", query.Get("error"), query.Get("error_description"),
		)})
		http.Error(w, "authorization denied", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.deliver(CallbackResult{Err: fmt.Errorf("code exchange failed: %w", err)})
		http.Error(w, "code exchange failed", http.StatusInternalServerError)
		return
	}

	h.deliver(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, successPage)
}

func (h *CallbackHandler) deliver(res CallbackResult) {
	h.once.Do(func() {
		h.result <- res
		close(h.result)
	})
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>tix</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
  <h1>&#10003; Signed in</h1>
  <p>You can close this tab and return to the terminal.</p>
</body>
</html>
`

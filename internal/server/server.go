// package server contains the short-lived local HTTP server used to
// complete the Google sign-in redirect flow.
package server

import "net/http"

// New builds the local callback server. Only the handler's callback path is
// routable; everything else 404s.
func New(addr string, handler *CallbackHandler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(callbackPath, handler)

	return &http.Server{Addr: addr, Handler: mux}
}

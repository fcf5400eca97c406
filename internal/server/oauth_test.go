package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

// tokenEndpoint fakes the provider's token URL for the code exchange.
func tokenEndpoint(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"google-token","token_type":"Bearer"}`))
	}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func callbackConfig(t *testing.T) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokenEndpoint(t)},
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("exchanges the code and reports the token", func(t *testing.T) {
		handler := NewCallbackHandler(callbackConfig(t), "state-1")
		ts := httptest.NewServer(handler)
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/callback?state=state-1&code=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("got status %d", resp.StatusCode)
		}

		result := <-handler.Result()
		if result.Err != nil {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		if result.Token == nil || result.Token.AccessToken != "google-token" {
			t.Errorf("got token %+v", result.Token)
		}
	})

	t.Run("state mismatch fails the flow", func(t *testing.T) {
		handler := NewCallbackHandler(callbackConfig(t), "state-1")
		ts := httptest.NewServer(handler)
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/callback?state=forged&code=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("got status %d", resp.StatusCode)
		}

		if result := <-handler.Result(); result.Err == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("denial is reported", func(t *testing.T) {
		handler := NewCallbackHandler(callbackConfig(t), "state-1")
		ts := httptest.NewServer(handler)
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/callback?state=state-1&error=access_denied")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()

		if result := <-handler.Result(); result.Err == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("second redirect is rejected", func(t *testing.T) {
		handler := NewCallbackHandler(callbackConfig(t), "state-1")
		ts := httptest.NewServer(handler)
		defer ts.Close()

		first, err := http.Get(ts.URL + "/callback?state=state-1&code=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first.Body.Close()

		second, err := http.Get(ts.URL + "/callback?state=state-1&code=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second.Body.Close()
		if second.StatusCode != http.StatusBadRequest {
			t.Errorf("got status %d for replayed callback", second.StatusCode)
		}
	})
}

func TestNew(t *testing.T) {
	handler := NewCallbackHandler(callbackConfig(t), "state-1")
	srv := New("localhost:0", handler)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/other")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unregistered path, got %d", resp.StatusCode)
	}
}

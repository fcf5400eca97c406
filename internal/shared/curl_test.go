package shared

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCurl = `curl 'http://api.example.camelot/api/user' \
  -H 'Accept: application/json' \
  -H 'Authorization: Bearer abc123token' \
  -b 'session=xyz; theme=dark'`

func TestParseCurlCommand(t *testing.T) {
	t.Run("extracts headers and cookie", func(t *testing.T) {
		headers, err := ParseCurlCommand([]byte(sampleCurl))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if headers.Headers["Accept"] != "application/json" {
			t.Errorf("got Accept %q", headers.Headers["Accept"])
		}
		if headers.Headers["Authorization"] != "Bearer abc123token" {
			t.Errorf("got Authorization %q", headers.Headers["Authorization"])
		}
		if headers.Cookie != "session=xyz; theme=dark" {
			t.Errorf("got cookie %q", headers.Cookie)
		}
	})

	t.Run("falls back to the Cookie header", func(t *testing.T) {
		cmd := `curl 'http://example.camelot' -H 'Cookie: session=abc' -H 'Accept: text/html'`

		headers, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if headers.Cookie != "session=abc" {
			t.Errorf("got cookie %q", headers.Cookie)
		}
	})

	t.Run("double-quoted headers parse too", func(t *testing.T) {
		cmd := `curl "http://example.camelot" -H "Accept: application/json"`

		headers, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if headers.Headers["Accept"] != "application/json" {
			t.Errorf("got Accept %q", headers.Headers["Accept"])
		}
	})

	t.Run("command without headers errors", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte(`curl http://example.camelot`)); err == nil {
			t.Error("expected error for bare command")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.sh")
	if err := os.WriteFile(path, []byte(sampleCurl), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	headers, err := ParseCurlFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers.Headers["Authorization"] == "" {
		t.Error("expected Authorization header")
	}

	if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "missing.sh")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"standard header", map[string]string{"Authorization": "Bearer tok-1"}, "tok-1"},
		{"lowercase header name", map[string]string{"authorization": "Bearer tok-2"}, "tok-2"},
		{"padded token", map[string]string{"Authorization": "Bearer  tok-3 "}, "tok-3"},
		{"basic auth ignored", map[string]string{"Authorization": "Basic dXNlcg=="}, ""},
		{"no auth header", map[string]string{"Accept": "application/json"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CurlHeaders{Headers: tt.headers}
			if got := c.BearerToken(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

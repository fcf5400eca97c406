package shared

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{92, "1h 32m"},
		{150, "2h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.minutes); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestGenerateState(t *testing.T) {
	t.Run("produces url-safe tokens", func(t *testing.T) {
		state, err := GenerateState()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state == "" {
			t.Fatal("expected non-empty state")
		}
		if strings.ContainsAny(state, "+/=") {
			t.Errorf("state %q contains non-url-safe characters", state)
		}
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, _ := GenerateState()
		b, _ := GenerateState()
		if a == b {
			t.Error("expected distinct state tokens")
		}
	})
}

func TestGenerateID(t *testing.T) {
	if GenerateID() == GenerateID() {
		t.Error("expected distinct IDs")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]int{"count": 3}

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"count":3}` {
			t.Errorf("got %s", data)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "\n") {
			t.Errorf("expected indented output, got %s", data)
		}
	})

	t.Run("unmarshalable value errors", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for channel value")
		}
	})
}

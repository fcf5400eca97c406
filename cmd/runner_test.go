package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
	tu "github.com/desertthunder/tix/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("fills in defaults", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})

		if r.config == nil {
			t.Error("expected default config")
		}
		if r.logger == nil {
			t.Error("expected default logger")
		}
		if r.output != os.Stdout {
			t.Error("expected stdout as default output")
		}
		if r.httpClient != http.DefaultClient {
			t.Error("expected default http client")
		}
		if r.store == nil {
			t.Error("expected default store")
		}
		if r.engine == nil {
			t.Error("expected a booking engine")
		}
	})

	t.Run("keeps provided dependencies", func(t *testing.T) {
		var buf bytes.Buffer
		config := shared.DefaultConfig()

		r := NewRunner(RunnerOpts{Config: config, Output: &buf})

		if r.config != config {
			t.Error("expected provided config")
		}
		if r.output != &buf {
			t.Error("expected provided output")
		}
	})

	t.Run("registers the command tree", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})

		commands := r.register()
		if len(commands) != 7 {
			t.Errorf("got %d commands, want 7", len(commands))
		}

		names := make(map[string]bool, len(commands))
		for _, command := range commands {
			names[command.Name] = true
		}
		for _, want := range []string{"setup", "auth", "movies", "sessions", "book", "profile", "tui"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}

func TestWriteJSON(t *testing.T) {
	payload := map[string]string{"status": "ok"}

	t.Run("compact output", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writeJSON(payload, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != `{"status":"ok"}`+"\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writeJSON(payload, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Errorf("expected indentation in %q", buf.String())
		}
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := r.writeJSON(payload, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("newline write failure surfaces", func(t *testing.T) {
		var buf bytes.Buffer
		limited := tu.NewLimitedWriter(1, 0, &buf)
		r := NewRunner(RunnerOpts{Output: &limited})

		if err := r.writeJSON(payload, false); err == nil {
			t.Error("expected error when the trailing newline fails")
		}
	})
}

func TestWritePlain(t *testing.T) {
	t.Run("formats into the output", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlain("%d seats\n", 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "3 seats\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("writePlainln pads with newlines", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		if err := r.writePlainln("done"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "\ndone\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("writePlainHeader frames the title", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRunner(RunnerOpts{Output: &buf})

		r.writePlainHeader("Export Complete!")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want 3", len(lines))
		}
		if lines[1] != "Export Complete!" {
			t.Errorf("got title line %q", lines[1])
		}
	})
}

func TestResolveSeats(t *testing.T) {
	session := &services.SessionDetail{
		ID: "s1",
		Slots: []services.SessionSlot{
			{ID: "a1", Row: 1, Number: 1, Status: services.SlotFree, Price: 1000},
			{ID: "a2", Row: 1, Number: 2, Status: services.SlotSold, Price: 1000},
			{ID: "a3", Row: 1, Number: 3, Status: services.SlotReserved, Price: 750},
		},
	}

	t.Run("maps free seats with their prices", func(t *testing.T) {
		seats, err := resolveSeats(session, []string{"a1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seats) != 1 || seats[0].SeatID != "a1" || seats[0].Price != 1000 {
			t.Errorf("got %+v", seats)
		}
	})

	t.Run("unknown seat is rejected", func(t *testing.T) {
		_, err := resolveSeats(session, []string{"z9"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("sold seat is rejected", func(t *testing.T) {
		_, err := resolveSeats(session, []string{"a2"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("reserved seat is rejected", func(t *testing.T) {
		_, err := resolveSeats(session, []string{"a3"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestResolveProducts(t *testing.T) {
	ctx := context.Background()

	productRunner := func(t *testing.T) *Runner {
		t.Helper()
		mux := http.NewServeMux()
		mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]services.Product{
				{ID: "popcorn", Name: "Popcorn", Price: 300},
				{ID: "soda", Name: "Soda", Price: 250},
			})
		})
		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		api := services.NewClient(server.URL+"/api", server.URL+"/sanctum", nil, nil)
		return NewRunner(RunnerOpts{API: api})
	}

	t.Run("parses id:quantity specs", func(t *testing.T) {
		r := productRunner(t)

		products, err := r.resolveProducts(ctx, []string{"popcorn:2", "soda"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(products) != 2 {
			t.Fatalf("got %d products", len(products))
		}
		if products[0].Quantity != 2 || products[0].Price != 300 {
			t.Errorf("got %+v", products[0])
		}
		if products[1].Quantity != 1 {
			t.Errorf("bare id should default to quantity 1, got %d", products[1].Quantity)
		}
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		r := productRunner(t)

		_, err := r.resolveProducts(ctx, []string{"nachos"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("bad quantities are rejected", func(t *testing.T) {
		r := productRunner(t)

		for _, spec := range []string{"popcorn:0", "popcorn:-1", "popcorn:two"} {
			if _, err := r.resolveProducts(ctx, []string{spec}); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("%s: expected ErrInvalidArgument, got %v", spec, err)
			}
		}
	})
}

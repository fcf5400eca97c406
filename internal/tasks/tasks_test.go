package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tix/internal/cart"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
)

type mockBookingAPI struct {
	movies     []services.Movie
	details    map[string]*services.MovieDetail
	session    *services.SessionDetail
	sessionErr error
	commitErr  error

	committedSession string
	committedSlots   []string
}

func (m *mockBookingAPI) Movies(ctx context.Context) ([]services.Movie, error) {
	return m.movies, nil
}

func (m *mockBookingAPI) Movie(ctx context.Context, movieID string) (*services.MovieDetail, error) {
	detail, ok := m.details[movieID]
	if !ok {
		return nil, errors.New("movie not found")
	}
	return detail, nil
}

func (m *mockBookingAPI) Session(ctx context.Context, sessionID string) (*services.SessionDetail, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return m.session, nil
}

func (m *mockBookingAPI) CommitSessionSlots(ctx context.Context, sessionID string, slots []string) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committedSession = sessionID
	m.committedSlots = slots
	return nil
}

func loadedCart() *cart.Cart {
	c := cart.New()
	c.SetSessionID("s1")
	c.SetSelectedSeats([]cart.SeatSelection{
		{SeatID: "a1", Price: 1000},
		{SeatID: "a2", Price: 750},
	})
	c.SetSelectedProducts([]cart.ProductSelection{
		{ProductID: "popcorn", Price: 300, Quantity: 2},
	})
	return c
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("commits seats and resets the cart", func(t *testing.T) {
		api := &mockBookingAPI{}
		engine := NewBookingEngine(api, loadedCart())
		progress := make(chan ProgressUpdate, 8)

		result, err := engine.Checkout(ctx, progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.SessionID != "s1" {
			t.Errorf("got session %q", result.SessionID)
		}
		if len(result.Seats) != 2 || len(result.Products) != 1 {
			t.Errorf("got %d seats, %d products", len(result.Seats), len(result.Products))
		}
		if result.TotalAmount != 2350 {
			t.Errorf("got total %d, want 2350", result.TotalAmount)
		}
		if result.CommittedAt.IsZero() {
			t.Error("expected a commit timestamp")
		}

		if api.committedSession != "s1" {
			t.Errorf("committed against session %q", api.committedSession)
		}
		if len(api.committedSlots) != 2 || api.committedSlots[0] != "a1" {
			t.Errorf("committed slots %v", api.committedSlots)
		}

		if !engine.Cart().Empty() {
			t.Error("expected cart reset after checkout")
		}

		close(progress)
		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		want := []Phase{ValidateCart, CommitSeats, CheckoutDone}
		if len(phases) != len(want) {
			t.Fatalf("got %d progress updates, want %d", len(phases), len(want))
		}
		for i, phase := range want {
			if phases[i] != phase {
				t.Errorf("phase[%d] = %s, want %s", i, phases[i], phase)
			}
		}
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		engine := NewBookingEngine(&mockBookingAPI{}, cart.New())

		_, err := engine.Checkout(ctx, nil)
		if !errors.Is(err, shared.ErrEmptyCart) {
			t.Errorf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("seats without a session are rejected", func(t *testing.T) {
		c := cart.New()
		c.SetSelectedSeats([]cart.SeatSelection{{SeatID: "a1", Price: 100}})
		engine := NewBookingEngine(&mockBookingAPI{}, c)

		_, err := engine.Checkout(ctx, nil)
		if !errors.Is(err, shared.ErrNoSession) {
			t.Errorf("expected ErrNoSession, got %v", err)
		}
	})

	t.Run("rejected commit leaves the cart intact", func(t *testing.T) {
		api := &mockBookingAPI{commitErr: errors.New("seats taken")}
		engine := NewBookingEngine(api, loadedCart())

		_, err := engine.Checkout(ctx, nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}

		if engine.Cart().Empty() {
			t.Error("cart must survive a failed commit")
		}
		if engine.Cart().TotalAmount() != 2350 {
			t.Errorf("got total %d after failed commit", engine.Cart().TotalAmount())
		}
	})

	t.Run("missing gateway is reported", func(t *testing.T) {
		engine := NewBookingEngine(nil, loadedCart())

		_, err := engine.Checkout(ctx, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestLoadSeatPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("associates the cart with the session", func(t *testing.T) {
		api := &mockBookingAPI{
			session: &services.SessionDetail{
				ID:    "s9",
				Hall:  "2",
				Slots: []services.SessionSlot{{ID: "x", Status: services.SlotFree}},
			},
		}
		engine := NewBookingEngine(api, cart.New())

		session, err := engine.LoadSeatPlan(ctx, "s9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session.ID != "s9" {
			t.Errorf("got session %q", session.ID)
		}
		if engine.Cart().SessionID() != "s9" {
			t.Errorf("cart session = %q, want s9", engine.Cart().SessionID())
		}
	})

	t.Run("fetch failure wraps ErrSessionNotFound", func(t *testing.T) {
		api := &mockBookingAPI{sessionErr: errors.New("410 gone")}
		engine := NewBookingEngine(api, cart.New())

		_, err := engine.LoadSeatPlan(ctx, "s9")
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestExportCatalog(t *testing.T) {
	ctx := context.Background()

	catalogAPI := func() *mockBookingAPI {
		return &mockBookingAPI{
			movies: []services.Movie{
				{ID: "m1", Title: "Arrival"},
				{ID: "m2", Title: "Dune"},
			},
			details: map[string]*services.MovieDetail{
				"m1": {Movie: services.Movie{ID: "m1", Title: "Arrival", Duration: 116}},
				"m2": {Movie: services.Movie{ID: "m2", Title: "Dune", Duration: 155}},
			},
		}
	}

	t.Run("exports the full catalog when no ids are given", func(t *testing.T) {
		engine := NewBookingEngine(catalogAPI(), cart.New())
		outputDir := filepath.Join(t.TempDir(), "export")

		result, err := engine.ExportCatalog(ctx, nil, nil, ExportOpts{
			Format:    "json",
			OutputDir: outputDir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TotalMovies != 2 || result.SuccessfulExports != 2 {
			t.Errorf("got %d/%d successful", result.SuccessfulExports, result.TotalMovies)
		}
		if result.FailedExports != 0 {
			t.Errorf("got %d failures", result.FailedExports)
		}

		for _, id := range []string{"m1", "m2"} {
			path := filepath.Join(outputDir, id+".json")
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected export file %s: %v", path, err)
			}
		}
		if _, err := os.Stat(result.ManifestPath); err != nil {
			t.Errorf("expected manifest at %s: %v", result.ManifestPath, err)
		}
	})

	t.Run("unknown movie counts as a failure", func(t *testing.T) {
		engine := NewBookingEngine(catalogAPI(), cart.New())

		result, err := engine.ExportCatalog(ctx, nil, []string{"m1", "ghost"}, ExportOpts{
			Format:    "json",
			OutputDir: filepath.Join(t.TempDir(), "export"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("got %d successful, %d failed", result.SuccessfulExports, result.FailedExports)
		}
	})

	t.Run("text export writes session listings", func(t *testing.T) {
		engine := NewBookingEngine(catalogAPI(), cart.New())
		outputDir := filepath.Join(t.TempDir(), "export")

		result, err := engine.ExportCatalog(ctx, nil, []string{"m1"}, ExportOpts{
			Format:    "txt",
			OutputDir: outputDir,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("got %d successful", result.SuccessfulExports)
		}

		path := filepath.Join(outputDir, "m1_sessions.txt")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected text export at %s: %v", path, err)
		}
	})
}

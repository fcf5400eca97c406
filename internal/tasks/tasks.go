package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/tix/internal/cart"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
)

// BookingAPI is the slice of the gateway the engine depends on.
type BookingAPI interface {
	Movies(ctx context.Context) ([]services.Movie, error)
	Movie(ctx context.Context, movieID string) (*services.MovieDetail, error)
	Session(ctx context.Context, sessionID string) (*services.SessionDetail, error)
	CommitSessionSlots(ctx context.Context, sessionID string, slots []string) error
}

// CheckoutResult contains all data from a completed reservation.
type CheckoutResult struct {
	SessionID   string                  `json:"session_id"`
	Seats       []cart.SeatSelection    `json:"seats"`
	Products    []cart.ProductSelection `json:"products"`
	TotalAmount cart.Amount             `json:"total_amount"`
	CommittedAt time.Time               `json:"committed_at"`
}

// BookingEngine orchestrates checkout and export operations over the
// gateway and the active cart.
type BookingEngine struct {
	api  BookingAPI
	cart *cart.Cart
}

// NewBookingEngine creates a new BookingEngine with the provided gateway and cart.
func NewBookingEngine(api BookingAPI, c *cart.Cart) *BookingEngine {
	return &BookingEngine{api: api, cart: c}
}

// Cart returns the engine's active cart.
func (e *BookingEngine) Cart() *cart.Cart {
	return e.cart
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BookingEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Checkout commits the cart's seats against its session, then resets the
// cart. The returned result snapshots the cart as it was submitted.
func (e *BookingEngine) Checkout(ctx context.Context, progress chan<- ProgressUpdate) (*CheckoutResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	if e.cart == nil {
		return nil, fmt.Errorf("%w: no active cart", shared.ErrEmptyCart)
	}

	e.sendProgress(progress, validateCartUpdate(1, 2))

	if len(e.cart.SelectedSeats()) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", shared.ErrEmptyCart)
	}
	if e.cart.SessionID() == "" {
		return nil, fmt.Errorf("%w: pick a session before checking out", shared.ErrNoSession)
	}

	result := &CheckoutResult{
		SessionID:   e.cart.SessionID(),
		Seats:       e.cart.SelectedSeats(),
		Products:    e.cart.SelectedProducts(),
		TotalAmount: e.cart.TotalAmount(),
	}

	e.sendProgress(progress, commitSeatsUpdate(2, 2, len(result.Seats)))

	if err := e.api.CommitSessionSlots(ctx, result.SessionID, e.cart.SeatIDs()); err != nil {
		return nil, fmt.Errorf("%w: reservation rejected: %v", shared.ErrAPIRequest, err)
	}

	result.CommittedAt = time.Now()
	e.cart.Reset()

	e.sendProgress(progress, checkoutDoneUpdate(result))
	return result, nil
}

// LoadSeatPlan fetches a showtime's seat plan and associates the cart with it.
func (e *BookingEngine) LoadSeatPlan(ctx context.Context, sessionID string) (*services.SessionDetail, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}

	session, err := e.api.Session(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSessionNotFound, err)
	}

	e.cart.SetSessionID(session.ID)
	return session, nil
}

// Showtime, seat plan, and concession endpoints.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/tix/internal/cart"
)

// Slot statuses reported by the seat plan.
const (
	SlotFree     = "free"
	SlotReserved = "reserved"
	SlotSold     = "sold"
)

// SessionSlot is one seat in a showtime's hall plan.
type SessionSlot struct {
	ID     string      `json:"id"`
	Row    int         `json:"row"`
	Number int         `json:"number"`
	Status string      `json:"status"`
	Price  cart.Amount `json:"price"`
}

// SessionDetail is a showtime with its seat plan.
type SessionDetail struct {
	ID       string        `json:"id"`
	MovieID  string        `json:"movie_id"`
	CinemaID string        `json:"cinema_id"`
	Hall     string        `json:"hall"`
	StartsAt string        `json:"starts_at"`
	Slots    []SessionSlot `json:"slots"`
}

// Product is a concession product.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       cart.Amount `json:"price"`
	ImageURL    string      `json:"image_url"`
}

// Session retrieves a showtime with its seat plan.
func (c *Client) Session(ctx context.Context, sessionID string) (*SessionDetail, error) {
	endpoint := fmt.Sprintf("/sessions/%s", sessionID)

	var session SessionDetail
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CommitSessionSlots submits the selected seats for a showtime, committing
// the reservation.
func (c *Client) CommitSessionSlots(ctx context.Context, sessionID string, slots []string) error {
	endpoint := fmt.Sprintf("/session-slots/%s", sessionID)
	body := map[string][]string{"slots": slots}

	return c.doRequest(ctx, http.MethodPatch, endpoint, body, nil)
}

// Products retrieves the concession catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doRequest(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

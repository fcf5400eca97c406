// package cart maintains the in-progress reservation: selected seats,
// selected concession products, and the derived total.
//
// The total is recomputed inside every setter, so readers never observe a
// stale or partially updated amount. The cart is not persisted; abandoning
// a booking discards it.
package cart

// SeatSelection is one chosen seat for the session being booked.
type SeatSelection struct {
	SeatID string `json:"seat_id"`
	Price  Amount `json:"price"`
}

// ProductSelection is one concession line item.
type ProductSelection struct {
	ProductID string `json:"product_id"`
	Price     Amount `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// Cart aggregates the selections for one reservation attempt.
//
// Not safe for concurrent mutation; command actions and the TUI drive it
// from a single goroutine.
type Cart struct {
	selectedSeats    []SeatSelection
	selectedProducts []ProductSelection
	totalAmount      Amount
	sessionID        string
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// SetSelectedSeats replaces the seat collection wholesale and recomputes the total.
func (c *Cart) SetSelectedSeats(seats []SeatSelection) {
	c.selectedSeats = seats
	c.recomputeTotal()
}

// SetSelectedProducts replaces the product collection wholesale and recomputes the total.
func (c *Cart) SetSelectedProducts(products []ProductSelection) {
	c.selectedProducts = products
	c.recomputeTotal()
}

// SetSessionID associates the cart with a showtime. Independent of totals.
func (c *Cart) SetSessionID(id string) {
	c.sessionID = id
}

// recomputeTotal derives the total from the current collections. Runs inside
// every setter, never deferred.
func (c *Cart) recomputeTotal() {
	var total Amount
	for _, seat := range c.selectedSeats {
		total += seat.Price
	}
	for _, product := range c.selectedProducts {
		total += product.Price.Mul(product.Quantity)
	}
	c.totalAmount = total
}

// Reset clears seats, products, and the total. The session association is
// retained so a follow-up booking for the same showtime starts clean.
func (c *Cart) Reset() {
	c.selectedSeats = nil
	c.selectedProducts = nil
	c.totalAmount = 0
}

// SelectedSeats returns the current seat collection.
func (c *Cart) SelectedSeats() []SeatSelection {
	return c.selectedSeats
}

// SelectedProducts returns the current product collection.
func (c *Cart) SelectedProducts() []ProductSelection {
	return c.selectedProducts
}

// TotalAmount returns the derived total for the current selections.
func (c *Cart) TotalAmount() Amount {
	return c.totalAmount
}

// SessionID returns the associated showtime, empty when unset.
func (c *Cart) SessionID() string {
	return c.sessionID
}

// Empty reports whether the cart holds no selections.
func (c *Cart) Empty() bool {
	return len(c.selectedSeats) == 0 && len(c.selectedProducts) == 0
}

// SeatIDs returns the seat identifiers in selection order, as submitted to
// the reservation endpoint.
func (c *Cart) SeatIDs() []string {
	ids := make([]string, 0, len(c.selectedSeats))
	for _, seat := range c.selectedSeats {
		ids = append(ids, seat.SeatID)
	}
	return ids
}

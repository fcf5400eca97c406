package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/tix/internal/cart"
	"github.com/desertthunder/tix/internal/formatter"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
	"github.com/desertthunder/tix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SessionShow prints a showtime's seat plan.
func (r *Runner) SessionShow(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", shared.ErrMissingArgument)
	}

	session, err := r.api.Session(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSessionNotFound, err)
	}

	if useJSON {
		return r.writeJSON(session, true)
	}

	return r.writePlain("%s", formatter.FormatSeatPlan(session))
}

// ProductsList lists concession products.
func (r *Runner) ProductsList(ctx context.Context, cmd *cli.Command) error {
	products, err := r.api.Products(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("Found %d products:\n\n", len(products))
	for i, product := range products {
		r.writePlain("%d. %s [%s] (id %s)\n", i+1, product.Name, product.Price, product.ID)
		if product.Description != "" {
			r.writePlain("   %s\n", product.Description)
		}
	}
	return nil
}

// Book reserves seats for a showtime in one shot: loads the seat plan,
// builds the cart from the flags, and commits the reservation.
func (r *Runner) Book(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.String("session")
	seatIDs := cmd.StringSlice("seat")
	productSpecs := cmd.StringSlice("product")
	useJSON := cmd.Bool("json")

	if !r.auth.IsAuthenticated() {
		return fmt.Errorf("%w: run 'tix auth login' first", shared.ErrNotAuthenticated)
	}

	r.logger.Info("booking seats", "session", sessionID, "seats", len(seatIDs))

	session, err := r.engine.LoadSeatPlan(ctx, sessionID)
	if err != nil {
		return err
	}

	seats, err := resolveSeats(session, seatIDs)
	if err != nil {
		return err
	}
	r.engine.Cart().SetSelectedSeats(seats)

	if len(productSpecs) > 0 {
		products, err := r.resolveProducts(ctx, productSpecs)
		if err != nil {
			return err
		}
		r.engine.Cart().SetSelectedProducts(products)
	}

	r.writePlain("%s\n", formatter.FormatCart(r.engine.Cart()))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("→ %s\n", update.Message)
		}
	}()

	result, err := r.engine.Checkout(ctx, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Reservation Confirmed!")
	r.writePlain("Session: %s\n", result.SessionID)
	r.writePlain("Seats: %d\n", len(result.Seats))
	r.writePlain("Total: %s\n", result.TotalAmount)

	return nil
}

// resolveSeats maps requested seat IDs onto the seat plan, rejecting seats
// that are missing or not free.
func resolveSeats(session *services.SessionDetail, seatIDs []string) ([]cart.SeatSelection, error) {
	plan := make(map[string]services.SessionSlot, len(session.Slots))
	for _, slot := range session.Slots {
		plan[slot.ID] = slot
	}

	seats := make([]cart.SeatSelection, 0, len(seatIDs))
	for _, id := range seatIDs {
		slot, ok := plan[id]
		if !ok {
			return nil, fmt.Errorf("%w: seat %s is not in this hall", shared.ErrInvalidArgument, id)
		}
		if slot.Status != services.SlotFree {
			return nil, fmt.Errorf("%w: seat %s is %s", shared.ErrInvalidArgument, id, slot.Status)
		}
		seats = append(seats, cart.SeatSelection{SeatID: slot.ID, Price: slot.Price})
	}

	return seats, nil
}

// resolveProducts parses id:quantity specs against the concession catalog.
func (r *Runner) resolveProducts(ctx context.Context, specs []string) ([]cart.ProductSelection, error) {
	catalog, err := r.api.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	prices := make(map[string]cart.Amount, len(catalog))
	for _, product := range catalog {
		prices[product.ID] = product.Price
	}

	selections := make([]cart.ProductSelection, 0, len(specs))
	for _, spec := range specs {
		id, qty := spec, int64(1)
		if before, after, found := strings.Cut(spec, ":"); found {
			parsed, err := strconv.ParseInt(after, 10, 64)
			if err != nil || parsed < 1 {
				return nil, fmt.Errorf("%w: bad product quantity in %q", shared.ErrInvalidArgument, spec)
			}
			id, qty = before, parsed
		}

		price, ok := prices[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %s", shared.ErrInvalidArgument, id)
		}

		selections = append(selections, cart.ProductSelection{ProductID: id, Price: price, Quantity: qty})
	}

	return selections, nil
}

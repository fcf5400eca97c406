package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateCart Phase = iota
	CommitSeats
	CheckoutDone
	FetchCatalog
	ExportMovie
)

func (p Phase) String() string {
	switch p {
	case ValidateCart:
		return "validate_cart"
	case CommitSeats:
		return "commit_seats"
	case CheckoutDone:
		return "checkout_done"
	case FetchCatalog:
		return "fetch_catalog"
	case ExportMovie:
		return "export_movie"
	default:
		return ""
	}
}

func validateCartUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateCart,
		Step:    step,
		Total:   total,
		Message: "Validating cart...",
	}
}

func commitSeatsUpdate(step, total, seats int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CommitSeats,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reserving %d seat(s)...", seats),
	}
}

func checkoutDoneUpdate(result *CheckoutResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckoutDone,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reservation confirmed (total %s)", result.TotalAmount),
		Data:    result,
	}
}

func fetchCatalogUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    step,
		Total:   total,
		Message: "Fetching movie catalog...",
	}
}

func exportingMovieUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

// Package tasks orchestrates multi-step booking and export operations with real-time progress reporting.
//
// # Core Operations
//
// The [BookingEngine] exposes three operations:
//
//  1. [BookingEngine.Checkout] : Commit the active cart
//     - Validates that seats are selected and a showtime is set
//     - Submits the seat IDs to the reservation endpoint
//     - Resets the cart and returns a snapshot of what was booked
//
//  2. [BookingEngine.LoadSeatPlan] : Fetch a showtime's seat plan
//     - Retrieves the hall layout with per-seat status and price
//     - Associates the cart with the showtime for later checkout
//
//  3. [BookingEngine.ExportCatalog] : Bulk export the movie catalog
//     - Fetches each movie's detail through a rate-limited worker pool
//     - Writes JSON, CSV, Markdown, or text files per movie
//     - Generates a manifest summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks

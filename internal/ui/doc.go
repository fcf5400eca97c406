// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view booking workflow:
//  1. [MovieListView] : Browse the movie catalog
//  2. [SessionListView] : Pick a showtime for the selected movie
//  3. [SeatSelectionView] : Toggle seats in the hall plan
//  4. [ConfirmView] : Review the order summary
//  5. [BookingView] : Monitor real-time reservation progress
//  6. [ResultView] : Display the confirmed reservation or failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the BookingEngine, providing non-blocking status reporting during checkout.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

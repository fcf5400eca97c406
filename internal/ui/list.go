package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tix/internal/formatter"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = showtimeItem{}
	_ list.Item = seatItem{}
)

// movieItem wraps [services.Movie] to implement [list.Item].
type movieItem struct {
	movie services.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := shared.FormatDuration(i.movie.Duration)
	if len(i.movie.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, formatter.GenreNames(i.movie.Genres))
	}
	return desc
}

// showtimeItem wraps [services.MovieShowtime] to implement [list.Item].
type showtimeItem struct {
	showtime services.MovieShowtime
}

func (i showtimeItem) FilterValue() string { return i.showtime.StartsAt }
func (i showtimeItem) Title() string       { return i.showtime.StartsAt }
func (i showtimeItem) Description() string {
	return fmt.Sprintf("hall %s • %s", i.showtime.Hall, i.showtime.Price)
}

// seatItem wraps [services.SessionSlot] to implement [list.Item].
type seatItem struct {
	slot     services.SessionSlot
	selected bool
}

func (i seatItem) FilterValue() string { return i.slot.ID }
func (i seatItem) Title() string {
	marker := " "
	if i.selected {
		marker = "✓"
	}
	return fmt.Sprintf("[%s] Row %d seat %d", marker, i.slot.Row, i.slot.Number)
}
func (i seatItem) Description() string {
	return i.slot.Price.String()
}

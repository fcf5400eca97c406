// Catalog browsing endpoints.
//
// Catalog entities are transient: fetched, rendered, and discarded. The
// gateway caches nothing and GET reads mutate no client state.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/tix/internal/cart"
)

// City represents a city with at least one cinema.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cinema represents a cinema location.
type Cinema struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	CityID  string `json:"city_id"`
}

// Movie represents a movie in the catalog.
type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"` // minutes
	AgeRating   string  `json:"age_rating"`
	PosterURL   string  `json:"poster_url"`
	Rating      float64 `json:"rating"`
	Genres      []Genre `json:"genres"`
}

// MovieShowtime is a showtime entry embedded in movie detail responses.
type MovieShowtime struct {
	ID       string      `json:"id"`
	CinemaID string      `json:"cinema_id"`
	Hall     string      `json:"hall"`
	StartsAt string      `json:"starts_at"`
	Price    cart.Amount `json:"price"`
}

// MovieDetail is a movie with its scheduled showtimes.
type MovieDetail struct {
	Movie
	Sessions []MovieShowtime `json:"sessions"`
}

// Cities retrieves all cities with cinemas.
func (c *Client) Cities(ctx context.Context) ([]City, error) {
	var cities []City
	if err := c.doRequest(ctx, http.MethodGet, "/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Genres retrieves all movie genres.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := c.doRequest(ctx, http.MethodGet, "/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Movies retrieves the full movie catalog.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.doRequest(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie retrieves one movie with its showtimes.
func (c *Client) Movie(ctx context.Context, movieID string) (*MovieDetail, error) {
	endpoint := fmt.Sprintf("/movie/%s", movieID)

	var movie MovieDetail
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// MoviesByCinema retrieves the movies currently scheduled at a cinema.
func (c *Client) MoviesByCinema(ctx context.Context, cinemaID string) ([]Movie, error) {
	endpoint := fmt.Sprintf("/movies/%s", cinemaID)

	var movies []Movie
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

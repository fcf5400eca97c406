// Comment and rating endpoints.
package services

import (
	"context"
	"fmt"
	"net/http"
)

// Comment is a user comment on a movie.
type Comment struct {
	ID        string `json:"id"`
	MovieID   string `json:"movie_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// RatingSummary aggregates a movie's ratings.
type RatingSummary struct {
	MovieID string  `json:"movie_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MovieComments retrieves the comments for a movie.
func (c *Client) MovieComments(ctx context.Context, movieID string) ([]Comment, error) {
	endpoint := fmt.Sprintf("/movies/%s/comments", movieID)

	var comments []Comment
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// PostComment publishes a comment on a movie.
func (c *Client) PostComment(ctx context.Context, movieID, text string) (*Comment, error) {
	endpoint := fmt.Sprintf("/movies/%s/comments", movieID)
	body := map[string]string{"text": text}

	var comment Comment
	if err := c.doRequest(ctx, http.MethodPost, endpoint, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the authenticated user's comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	endpoint := fmt.Sprintf("/movies/comments/%s", commentID)

	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// MovieRatings retrieves the rating summary for a movie.
func (c *Client) MovieRatings(ctx context.Context, movieID string) (*RatingSummary, error) {
	endpoint := fmt.Sprintf("/movies/%s/ratings", movieID)

	var summary RatingSummary
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// PostRating submits the authenticated user's rating (1-10) for a movie.
func (c *Client) PostRating(ctx context.Context, movieID string, value int) error {
	if value < 1 || value > 10 {
		return fmt.Errorf("rating must be between 1 and 10, got %d", value)
	}

	endpoint := fmt.Sprintf("/movies/%s/ratings", movieID)
	body := map[string]int{"value": value}

	return c.doRequest(ctx, http.MethodPost, endpoint, body, nil)
}

package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tix/internal/shared"
	"github.com/desertthunder/tix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MoviesList lists movies now showing, optionally scoped to one cinema.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	cinemaID := cmd.String("cinema")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("listing movies", "cinema", cinemaID)

	movies, err := r.api.Movies(ctx)
	if cinemaID != "" {
		movies, err = r.api.MoviesByCinema(ctx, cinemaID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	r.writePlain("Found %d movies:\n\n", len(movies))
	for i, movie := range movies {
		r.writePlain("%d. %s\n", i+1, movie.Title)
		r.writePlain("   ID: %s\n", movie.ID)
		r.writePlain("   Duration: %s\n", shared.FormatDuration(movie.Duration))
		if movie.AgeRating != "" {
			r.writePlain("   Age rating: %s\n", movie.AgeRating)
		}
		if movie.Rating > 0 {
			r.writePlain("   Rating: %.1f\n", movie.Rating)
		}
		r.writePlain("\n")
	}

	return nil
}

// MovieShow shows one movie with its showtimes.
func (r *Runner) MovieShow(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if movieID == "" {
		return fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	movie, err := r.api.Movie(ctx, movieID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMovieNotFound, err)
	}

	if useJSON {
		return r.writeJSON(movie, pretty)
	}

	r.writePlain("%s\n", movie.Title)
	if movie.Description != "" {
		r.writePlain("%s\n", movie.Description)
	}
	r.writePlain("Duration: %s\n\n", shared.FormatDuration(movie.Duration))

	r.writePlain("Showtimes: %d\n", len(movie.Sessions))
	for i, session := range movie.Sessions {
		r.writePlain("%d. %s - hall %s [%s] (id %s)\n", i+1, session.StartsAt, session.Hall, session.Price, session.ID)
	}

	return nil
}

// CitiesList lists cities with cinemas.
func (r *Runner) CitiesList(ctx context.Context, cmd *cli.Command) error {
	cities, err := r.api.Cities(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	for i, city := range cities {
		r.writePlain("%d. %s (id %s)\n", i+1, city.Name, city.ID)
	}
	return nil
}

// GenresList lists movie genres.
func (r *Runner) GenresList(ctx context.Context, cmd *cli.Command) error {
	genres, err := r.api.Genres(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	for i, genre := range genres {
		r.writePlain("%d. %s (id %s)\n", i+1, genre.Name, genre.ID)
	}
	return nil
}

// MoviesExport bulk-exports the movie catalog with a worker pool.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate-limit"),
	}
	ids := cmd.StringSlice("id")

	r.logger.Info("starting catalog export", "format", opts.Format, "workers", opts.NumWorkers)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchCatalog:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportMovie:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.ExportCatalog(ctx, progressCh, ids, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Movies: %d\n", result.TotalMovies)
	r.writePlain("Succeeded: %d\n", result.SuccessfulExports)
	r.writePlain("Failed: %d\n", result.FailedExports)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	return nil
}

// MovieComments lists comments for a movie.
func (r *Runner) MovieComments(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	if movieID == "" {
		return fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	comments, err := r.api.MovieComments(ctx, movieID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("%d comment(s):\n\n", len(comments))
	for i, comment := range comments {
		r.writePlain("%d. %s: %s\n", i+1, comment.Author, comment.Text)
	}
	return nil
}

// MovieComment posts a comment on a movie.
func (r *Runner) MovieComment(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	text := cmd.String("text")

	if movieID == "" {
		return fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	comment, err := r.api.PostComment(ctx, movieID, text)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Comment posted (id %s)\n", comment.ID)
}

// MovieUncomment deletes one of the user's comments.
func (r *Runner) MovieUncomment(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id is required", shared.ErrMissingArgument)
	}

	if err := r.api.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Comment deleted\n")
}

// MovieRate rates a movie and prints the updated summary.
func (r *Runner) MovieRate(ctx context.Context, cmd *cli.Command) error {
	movieID := cmd.StringArg("id")
	value := int(cmd.Int("value"))

	if movieID == "" {
		return fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}

	if err := r.api.PostRating(ctx, movieID, value); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	summary, err := r.api.MovieRatings(ctx, movieID)
	if err != nil {
		return r.writePlain("✓ Rating submitted\n")
	}

	r.writePlain("✓ Rating submitted\n")
	r.writePlain("Average: %.1f (%d ratings)\n", summary.Average, summary.Count)
	return nil
}

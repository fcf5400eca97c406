package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/tix/internal/formatter"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for bulk catalog exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: catalog_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// MovieExportJob pairs a movie ID with its fetched detail for a worker.
type MovieExportJob struct {
	MovieID string
	Detail  *services.MovieDetail
}

// MovieExportResult records the outcome of exporting one movie.
type MovieExportResult struct {
	MovieID string   `json:"movie_id"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   error    `json:"-"`
}

// CatalogExportResult summarizes a bulk catalog export run.
type CatalogExportResult struct {
	TotalMovies       int                 `json:"total_movies"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"manifest_path,omitempty"`
	Results           []MovieExportResult `json:"results"`
}

// ExportCatalog exports multiple movies concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern to efficiently export the catalog.
// It respects API rate limits, handles partial failures gracefully, and generates
// a manifest file summarizing the export results. When ids is empty the full
// catalog is fetched and every movie is exported.
func (e *BookingEngine) ExportCatalog(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts ExportOpts,
) (*CatalogExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("catalog_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if len(ids) == 0 {
		e.sendProgress(prog, fetchCatalogUpdate(0, 0))
		movies, err := e.api.Movies(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to fetch catalog: %v", shared.ErrAPIRequest, err)
		}
		for _, movie := range movies {
			ids = append(ids, movie.ID)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &CatalogExportResult{
		TotalMovies:     len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]MovieExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan MovieExportJob, len(ids))
	results := make(chan MovieExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, movieID := range ids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			detail, err := e.api.Movie(ctx, movieID)
			if err != nil {
				results <- MovieExportResult{
					MovieID: movieID,
					Title:   fmt.Sprintf("Unknown (%s)", movieID),
					Success: false,
					Error:   fmt.Errorf("failed to fetch movie: %w", err),
				}
				continue
			}

			jobs <- MovieExportJob{
				MovieID: movieID,
				Detail:  detail,
			}

			e.sendProgress(prog, exportingMovieUpdate(i+1, len(ids), detail.Title))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(
				completed,
				len(ids),
				res.Title,
				len(res.Files),
			))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(
				completed,
				len(ids),
				res.Title,
				res.Error,
			))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports movies from the jobs channel.
func (e *BookingEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan MovieExportJob,
	results chan<- MovieExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := e.exportSingleMovie(job, opts)
		results <- res
	}
}

// exportSingleMovie exports a single movie to the appropriate format.
func (e *BookingEngine) exportSingleMovie(j MovieExportJob, opts ExportOpts) MovieExportResult {
	result := MovieExportResult{
		MovieID: j.MovieID,
		Title:   j.Detail.Title,
		Success: false,
		Files:   []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Detail.ID)
		csvRes, err := formatter.WriteCSVExport(j.Detail, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.SessionsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Detail.ID)

		mdRes, err := formatter.WriteMarkdownExport(j.Detail, outputDir, j.Detail.PosterURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_sessions.txt", j.Detail.ID))
		filepath, err := formatter.WriteTextExport(j.Detail, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{filepath}
		result.Success = true
	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Detail.ID))
		data, err := shared.MarshalJSON(j.Detail, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

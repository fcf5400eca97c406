// package formatter provides functions to export movie data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tix/internal/cart"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
)

// ExportToCSV converts a movie's showtimes to CSV format with columns: ID, Cinema, Hall, StartsAt, Price
func ExportToCSV(detail *services.MovieDetail) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Cinema", "Hall", "StartsAt", "Price"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, session := range detail.Sessions {
		record := []string{
			session.ID,
			session.CinemaID,
			session.Hall,
			session.StartsAt,
			session.Price.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie and its showtimes to Markdown format with optional poster image
func ExportToMarkdown(detail *services.MovieDetail, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", detail.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	if detail.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", detail.Description))
	}

	buf.WriteString(fmt.Sprintf("**Duration**: %s\n", shared.FormatDuration(detail.Duration)))
	if detail.AgeRating != "" {
		buf.WriteString(fmt.Sprintf("**Age rating**: %s\n", detail.AgeRating))
	}
	if len(detail.Genres) > 0 {
		buf.WriteString(fmt.Sprintf("**Genres**: %s\n", GenreNames(detail.Genres)))
	}
	buf.WriteString(fmt.Sprintf("**Showtimes**: %d\n\n", len(detail.Sessions)))

	buf.WriteString("## Showtimes\n\n")
	for i, session := range detail.Sessions {
		buf.WriteString(fmt.Sprintf("%d. %s - hall %s [%s]\n", i+1, session.StartsAt, session.Hall, session.Price))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie and its showtimes to plain text format
func ExportToText(detail *services.MovieDetail) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movie: %s\n", detail.Title))
	if detail.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", detail.Description))
	}
	buf.WriteString(fmt.Sprintf("Duration: %s\n", shared.FormatDuration(detail.Duration)))
	buf.WriteString(fmt.Sprintf("Showtimes: %d\n\n", len(detail.Sessions)))

	for i, session := range detail.Sessions {
		buf.WriteString(fmt.Sprintf("%d. %s - hall %s\n", i+1, session.StartsAt, session.Hall))
	}

	return buf.Bytes(), nil
}

// GenreNames joins genre names with commas for single-line display.
func GenreNames(genres []services.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// FormatCart renders an order summary of the cart's seats and products.
func FormatCart(c *cart.Cart) string {
	var buf bytes.Buffer

	seats := c.SelectedSeats()
	products := c.SelectedProducts()

	if c.SessionID() != "" {
		buf.WriteString(fmt.Sprintf("Session: %s\n", c.SessionID()))
	}

	buf.WriteString(fmt.Sprintf("Seats: %d\n", len(seats)))
	for i, seat := range seats {
		buf.WriteString(fmt.Sprintf("  %d. %s [%s]\n", i+1, seat.SeatID, seat.Price))
	}

	if len(products) > 0 {
		buf.WriteString(fmt.Sprintf("Products: %d\n", len(products)))
		for i, product := range products {
			subtotal := product.Price.Mul(product.Quantity)
			buf.WriteString(fmt.Sprintf("  %d. %s x%d [%s]\n", i+1, product.ProductID, product.Quantity, subtotal))
		}
	}

	buf.WriteString(fmt.Sprintf("Total: %s\n", c.TotalAmount()))
	return buf.String()
}

// FormatSeatPlan renders a showtime's seat plan as a row-by-row grid.
//
// Free seats are shown by number, reserved as "r", sold as "x".
func FormatSeatPlan(session *services.SessionDetail) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Session %s - hall %s (%s)\n\n", session.ID, session.Hall, session.StartsAt))

	rows := map[int][]services.SessionSlot{}
	maxRow := 0
	for _, slot := range session.Slots {
		rows[slot.Row] = append(rows[slot.Row], slot)
		if slot.Row > maxRow {
			maxRow = slot.Row
		}
	}

	for row := 1; row <= maxRow; row++ {
		buf.WriteString(fmt.Sprintf("Row %2d: ", row))
		for _, slot := range rows[row] {
			switch slot.Status {
			case services.SlotSold:
				buf.WriteString("  x")
			case services.SlotReserved:
				buf.WriteString("  r")
			default:
				buf.WriteString(fmt.Sprintf(" %2s", strconv.Itoa(slot.Number)))
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of movie metadata (without showtimes)
func ToMetadataJSON(movie services.Movie) ([]byte, error) {
	return shared.MarshalJSON(movie, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SessionsFile string
	MetadataFile string
}

// WriteCSVExport exports a movie to CSV format with accompanying metadata JSON file.
//
// Defaults to movie ID as the base filename & creates {base}_sessions.csv and {base}_metadata.json
func WriteCSVExport(detail *services.MovieDetail, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = detail.ID
	}

	csvData, err := ExportToCSV(detail)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	sessionsFile := baseFilepath + "_sessions.csv"
	if err := os.WriteFile(sessionsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(detail.Movie)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		SessionsFile: sessionsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory   string
	Files       []string
	PosterImage string
}

// WriteMarkdownExport exports a movie to Markdown format in a dedicated directory.
//
// Directory name defaults to the movie ID.
// The imageURL parameter is optional - if provided, attempts to download the poster.
// Creates a directory structure: {dir}/README.md and optionally {dir}/poster.jpg
func WriteMarkdownExport(detail *services.MovieDetail, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = detail.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var posterFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download poster: %v\n", err)
		} else {
			posterFilename = "poster.jpg"
			posterPath := fmt.Sprintf("%s/%s", outputDir, posterFilename)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster: %v\n", err)
				posterFilename = ""
			} else {
				result.PosterImage = posterPath
				result.Files = append(result.Files, posterPath)
			}
		}
	}

	mdData, err := ExportToMarkdown(detail, posterFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteExportManifest writes a JSON manifest summarizing a bulk export run.
func WriteExportManifest(result any, format string, path string) error {
	manifest := struct {
		Format      string    `json:"format"`
		GeneratedAt time.Time `json:"generated_at"`
		Result      any       `json:"result"`
	}{
		Format:      format,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// WriteTextExport exports a movie to plain text format.
//
// Defaults to {movie.ID}_sessions.txt as the filename.
func WriteTextExport(detail *services.MovieDetail, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_sessions.txt", detail.ID)
	}

	textData, err := ExportToText(detail)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

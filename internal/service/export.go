package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
)

// exportColumns is the fixed output column order.
var exportColumns = []string{
	"movie_name", "budget", "gross", "genre", "runtime", "rating", "vote",
	"pop_actor1", "pop_actor2", "pop_actor3", "pop_director", "link",
}

// Exporter dumps the result store to a flat CSV file.
type Exporter struct {
	movies *repository.MovieResultRepository
	logger *logger.Logger
}

// NewExporter creates a new Exporter.
// Parameters:
//   - movies: result row repository.
//   - log: structured logger.
// Returns:
//   - *Exporter: exporter instance.
func NewExporter(movies *repository.MovieResultRepository, log *logger.Logger) *Exporter {
	return &Exporter{movies: movies, logger: log}
}

// log returns a logger from context if available, otherwise returns the injected logger
func (e *Exporter) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return e.logger
}

// Export writes every persisted result row to path. Re-running
// overwrites the file.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - path: destination CSV file.
// Returns:
//   - error: non-nil on store or file I/O failure.
func (e *Exporter) Export(ctx context.Context, path string) error {
	ctx = e.log(ctx).WithContext(ctx)

	results, err := e.movies.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read result store: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range results {
		if err := w.Write(exportRecord(&results[i])); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	var size int
	if fi, err := f.Stat(); err == nil {
		size = int(fi.Size())
	}
	logger.With(logger.Fields{"path": path}).
		WithCount(len(results)).
		WithSize(size).
		Info(ctx, "Exported result store")
	return nil
}

// exportRecord renders one row in exportColumns order; nil fields
// become empty cells.
func exportRecord(r *domain.MovieResult) []string {
	return []string{
		r.MovieName,
		formatInt(r.Budget),
		formatInt(r.Gross),
		r.Genre,
		formatInt(r.Runtime),
		formatFloat(r.Rating),
		formatInt(r.Vote),
		formatFloat(r.PopActor1),
		formatFloat(r.PopActor2),
		formatFloat(r.PopActor3),
		formatFloat(r.PopDirector),
		r.Link,
	}
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

package repository

import (
	"context"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieResultRepository handles enriched movie row operations.
type MovieResultRepository struct {
	db *gorm.DB
}

// NewMovieResultRepository creates a new MovieResultRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MovieResultRepository: repository instance bound to db.
func NewMovieResultRepository(db *gorm.DB) *MovieResultRepository {
	return &MovieResultRepository{db: db}
}

// Upsert creates or replaces a result row keyed by movie_name.
// The table never holds two rows for the same name.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - result: row to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *MovieResultRepository) Upsert(ctx context.Context, result *domain.MovieResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_name"}},
		UpdateAll: true,
	}).Create(result).Error
}

// GetByName retrieves a result row by movie name.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - movieName: primary key of the row.
// Returns:
//   - *domain.MovieResult: row if found.
//   - error: non-nil if lookup fails, including gorm.ErrRecordNotFound.
func (r *MovieResultRepository) GetByName(ctx context.Context, movieName string) (*domain.MovieResult, error) {
	var result domain.MovieResult
	if err := r.db.WithContext(ctx).First(&result, "movie_name = ?", movieName).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Count returns the number of persisted result rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of rows.
//   - error: non-nil if the query fails.
func (r *MovieResultRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.MovieResult{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll retrieves every result row in insertion order, for export.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.MovieResult: all persisted rows.
//   - error: non-nil if the query fails.
func (r *MovieResultRepository) ListAll(ctx context.Context) ([]domain.MovieResult, error) {
	var results []domain.MovieResult
	if err := r.db.WithContext(ctx).Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

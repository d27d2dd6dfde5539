package repository

import (
	"context"
	"time"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScrapeRunRepository records batch invocations for observability.
type ScrapeRunRepository struct {
	db *gorm.DB
}

// NewScrapeRunRepository creates a new ScrapeRunRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ScrapeRunRepository: repository instance bound to db.
func NewScrapeRunRepository(db *gorm.DB) *ScrapeRunRepository {
	return &ScrapeRunRepository{db: db}
}

// Start creates a new running scrape run record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - totalItems: number of titles selected for this batch.
// Returns:
//   - *domain.ScrapeRun: the created record.
//   - error: non-nil if the insert fails.
func (r *ScrapeRunRepository) Start(ctx context.Context, totalItems int) (*domain.ScrapeRun, error) {
	now := time.Now()
	run := &domain.ScrapeRun{
		ID:         uuid.New().String(),
		Status:     domain.RunStatusRunning,
		TotalItems: totalItems,
		StartedAt:  &now,
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// Complete finalizes a scrape run with its counters and status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - run: run record with updated counters.
//   - status: final run status.
// Returns:
//   - error: non-nil if the update fails.
func (r *ScrapeRunRepository) Complete(ctx context.Context, run *domain.ScrapeRun, status domain.RunStatus) error {
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	return r.db.WithContext(ctx).Save(run).Error
}

// ListRecent retrieves the most recent runs, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.ScrapeRun: matching records.
//   - error: non-nil if the query fails.
func (r *ScrapeRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.ScrapeRun, error) {
	var runs []domain.ScrapeRun
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

package repository

import (
	"context"
	"time"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TitleRepository handles the durable per-title processing status that
// drives resume. A batch run selects titles not yet marked done, so an
// interrupted or failed run picks up exactly where it stopped.
type TitleRepository struct {
	db *gorm.DB
}

// NewTitleRepository creates a new TitleRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *TitleRepository: repository instance bound to db.
func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// SyncCatalog seeds status rows for catalog entries not seen before.
// Existing rows keep their status; re-running after a catalog reload is
// a no-op for already-seeded indexes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - titles: full ordered catalog.
// Returns:
//   - error: non-nil if the insert fails.
func (r *TitleRepository) SyncCatalog(ctx context.Context, titles []domain.Title) error {
	if len(titles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sequence_index"}},
		DoNothing: true,
	}).CreateInBatches(titles, 500).Error
}

// NextBatch retrieves up to limit titles not yet marked done, in
// ascending sequence order. Failed titles are included so they are
// retried on later runs.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of titles to return.
// Returns:
//   - []domain.Title: titles to process next.
//   - error: non-nil if the query fails.
func (r *TitleRepository) NextBatch(ctx context.Context, limit int) ([]domain.Title, error) {
	var titles []domain.Title
	if err := r.db.WithContext(ctx).
		Where("status <> ?", domain.TitleStatusDone).
		Order("sequence_index").
		Limit(limit).
		Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

// MarkDone marks a title as successfully processed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sequenceIndex: catalog position of the title.
// Returns:
//   - error: non-nil if the update fails.
func (r *TitleRepository) MarkDone(ctx context.Context, sequenceIndex int) error {
	return r.db.WithContext(ctx).Model(&domain.Title{}).
		Where("sequence_index = ?", sequenceIndex).
		Updates(map[string]interface{}{
			"status":     domain.TitleStatusDone,
			"last_error": "",
			"updated_at": time.Now(),
		}).Error
}

// MarkFailed marks a title as failed and records the failure reason.
// The title stays eligible for retry on the next run.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sequenceIndex: catalog position of the title.
//   - reason: failure description for diagnostics.
// Returns:
//   - error: non-nil if the update fails.
func (r *TitleRepository) MarkFailed(ctx context.Context, sequenceIndex int, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Title{}).
		Where("sequence_index = ?", sequenceIndex).
		Updates(map[string]interface{}{
			"status":     domain.TitleStatusFailed,
			"last_error": reason,
			"attempts":   gorm.Expr("attempts + 1"),
			"updated_at": time.Now(),
		}).Error
}

// CountByStatus counts titles with the given status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: title status to count.
// Returns:
//   - int64: number of matching titles.
//   - error: non-nil if the query fails.
func (r *TitleRepository) CountByStatus(ctx context.Context, status domain.TitleStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Title{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountRemaining counts titles not yet marked done.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of titles still to process.
//   - error: non-nil if the query fails.
func (r *TitleRepository) CountRemaining(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Title{}).
		Where("status <> ?", domain.TitleStatusDone).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersonRepository handles person popularity cache operations.
type PersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new PersonRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PersonRepository: repository instance bound to db.
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// GetPopularity retrieves the cached popularity for a person id.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - personID: IMDb person identifier.
// Returns:
//   - *float64: cached popularity, or nil when the id is not cached.
//   - error: non-nil on store failure; a missing record is not an error.
func (r *PersonRepository) GetPopularity(ctx context.Context, personID string) (*float64, error) {
	var person domain.Person
	if err := r.db.WithContext(ctx).First(&person, "person_id = ?", personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person.Popularity, nil
}

// GetByID retrieves a full person record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - personID: IMDb person identifier.
// Returns:
//   - *domain.Person: person record if found.
//   - error: non-nil if lookup fails, including gorm.ErrRecordNotFound.
func (r *PersonRepository) GetByID(ctx context.Context, personID string) (*domain.Person, error) {
	var person domain.Person
	if err := r.db.WithContext(ctx).First(&person, "person_id = ?", personID).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// Upsert creates or replaces a person record keyed by person_id.
// Last write wins; in practice each id is written at most once because
// callers check the cache before resolving.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - person: person record to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *PersonRepository) Upsert(ctx context.Context, person *domain.Person) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "person_id"}},
		UpdateAll: true,
	}).Create(person).Error
}

// Count returns the number of cached people.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of records.
//   - error: non-nil if the query fails.
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Person{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

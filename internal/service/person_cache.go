package service

import (
	"context"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
	gocache "github.com/patrickmn/go-cache"
)

// PersonCache is the read-through popularity cache: an in-process map
// in front of the durable people table. The durable tier is what makes
// resolution idempotent across runs; the memory tier just avoids
// re-reading the store for people who recur within a run.
type PersonCache struct {
	repo *repository.PersonRepository
	mem  *gocache.Cache
}

// NewPersonCache creates a new PersonCache.
// Parameters:
//   - repo: durable person repository.
// Returns:
//   - *PersonCache: cache instance.
func NewPersonCache(repo *repository.PersonRepository) *PersonCache {
	return &PersonCache{
		repo: repo,
		mem:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Lookup returns the cached popularity for a person id.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - personID: IMDb person identifier.
// Returns:
//   - *float64: popularity, or nil when the id has never been resolved.
//   - error: non-nil on store failure.
func (c *PersonCache) Lookup(ctx context.Context, personID string) (*float64, error) {
	if v, ok := c.mem.Get(personID); ok {
		pop := v.(float64)
		return &pop, nil
	}

	pop, err := c.repo.GetPopularity(ctx, personID)
	if err != nil {
		return nil, err
	}
	if pop != nil {
		c.mem.Set(personID, *pop, gocache.NoExpiration)
	}
	return pop, nil
}

// Store writes a freshly resolved popularity through to both tiers.
// Upsert semantics: last write wins, though each id is normally written
// at most once because callers Lookup first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - personID: IMDb person identifier.
//   - personName: display name from the credits listing.
//   - popularity: resolved popularity score.
// Returns:
//   - error: non-nil on store failure.
func (c *PersonCache) Store(ctx context.Context, personID, personName string, popularity float64) error {
	if err := c.repo.Upsert(ctx, &domain.Person{
		PersonID:   personID,
		PersonName: personName,
		Popularity: popularity,
	}); err != nil {
		return err
	}
	c.mem.Set(personID, popularity, gocache.NoExpiration)
	return nil
}

package service

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/refdata"
	"github.com/ZahraSafaei1272/WebScraping/internal/scraper"
)

// Structural locations of the fields on a title detail page.
const (
	budgetSelector   = `li[data-testid="title-boxoffice-budget"] li.ipc-inline-list__item`
	grossSelector    = `li[data-testid="title-boxoffice-cumulativeworldwidegross"] span.ipc-metadata-list-item__list-content-item`
	actorSelector    = `a[data-testid="title-cast-item__actor"]`
	directorSelector = `li[data-testid="title-pc-principal-credit"] a`
)

// Extractor turns one fetched detail document plus the reference
// datasets into a candidate result row. Every sub-step is independently
// fault tolerant: a failure degrades its own field to nil and the row
// is always produced.
type Extractor struct {
	fetcher    *scraper.Fetcher
	popularity *PopularityResolver
	cache      *PersonCache
	refs       *refdata.ReferenceSet
	logger     *logger.Logger
}

// NewExtractor creates a new Extractor.
// Parameters:
//   - fetcher: used to resolve relative person links.
//   - popularity: resolver for person pages (owns the person fetch).
//   - cache: cross-run person popularity cache.
//   - refs: read-only reference-data handle, built once at startup.
//   - log: structured logger.
// Returns:
//   - *Extractor: extractor instance.
func NewExtractor(
	fetcher *scraper.Fetcher,
	popularity *PopularityResolver,
	cache *PersonCache,
	refs *refdata.ReferenceSet,
	log *logger.Logger,
) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		popularity: popularity,
		cache:      cache,
		refs:       refs,
		logger:     log,
	}
}

// log returns a logger from context if available, otherwise returns the injected logger
func (e *Extractor) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return e.logger
}

// Extract builds the result row for one catalog title.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - doc: fetched detail document for the title.
//   - title: catalog entry supplying name, link, and positional genre.
// Returns:
//   - *domain.MovieResult: the candidate row; never nil.
func (e *Extractor) Extract(ctx context.Context, doc *goquery.Document, title domain.Title) *domain.MovieResult {
	result := &domain.MovieResult{
		MovieName: title.MovieName,
		Genre:     title.Genre,
		Link:      title.Link,
	}

	result.Budget = ParseAmount(selectText(doc, budgetSelector))
	result.Gross = ParseAmount(selectText(doc, grossSelector))

	result.PopActor1 = e.personPopularity(ctx, doc, actorSelector, 0)
	result.PopActor2 = e.personPopularity(ctx, doc, actorSelector, 1)
	result.PopActor3 = e.personPopularity(ctx, doc, actorSelector, 2)
	result.PopDirector = e.personPopularity(ctx, doc, directorSelector, 0)

	titleID := refdata.TitleIDFromLink(title.Link)
	result.Runtime = e.refs.Runtime(titleID)
	result.Rating, result.Vote = e.refs.Rating(titleID)

	return result
}

// personPopularity resolves the popularity for one credit slot: locate
// the profile link, check the cache, fetch and score on a miss, write
// through on success. Any failure along the way nulls the slot only.
func (e *Extractor) personPopularity(ctx context.Context, doc *goquery.Document, selector string, index int) *float64 {
	sel := doc.Find(selector).Eq(index)
	if sel.Length() == 0 {
		return nil
	}
	href, ok := sel.Attr("href")
	if !ok || href == "" {
		return nil
	}

	personURL, personID := e.personRef(href)
	if personID == "" {
		return nil
	}

	cached, err := e.cache.Lookup(ctx, personID)
	if err != nil {
		e.log(ctx).WithError(err).WithField(logger.FieldPersonID, personID).
			Error("Person cache read failed")
		return nil
	}
	if cached != nil {
		return cached
	}

	pop, err := e.popularity.Resolve(ctx, personURL)
	if err != nil {
		e.log(ctx).WithError(err).WithFields(logger.Fields{
			logger.FieldPersonID: personID,
			logger.FieldURL:      personURL,
		}).Warn("Person page fetch failed")
		return nil
	}
	if pop == nil {
		return nil
	}

	name := strings.TrimSpace(sel.Text())
	if err := e.cache.Store(ctx, personID, name, *pop); err != nil {
		e.log(ctx).WithError(err).WithField(logger.FieldPersonID, personID).
			Error("Person cache write failed")
	}
	return pop
}

// personRef derives the absolute profile URL and the opaque person id
// from a credit href. The id is the 3rd '/'-segment of the path
// (/name/nm1234567/...); absolute hrefs carry no extractable id.
func (e *Extractor) personRef(href string) (personURL, personID string) {
	if !strings.HasPrefix(href, "/") {
		return href, ""
	}
	parts := strings.Split(href, "/")
	if len(parts) > 2 {
		personID = parts[2]
	}
	return e.fetcher.AbsoluteURL(href), personID
}

// selectText returns the trimmed text of the first match, or "".
func selectText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/refdata"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
)

func quietLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "text", Output: io.Discard})
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}
	return doc
}

// writeRefData lays down minimal basics/ratings TSVs holding tt002.
func writeRefData(t *testing.T) *refdata.ReferenceSet {
	t.Helper()
	dir := t.TempDir()
	basics := filepath.Join(dir, "title.basics.tsv")
	ratings := filepath.Join(dir, "title.ratings.tsv")

	basicsData := "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres\n" +
		"tt002\tmovie\tM2\tM2\t0\t2018\t\\N\t120\tAction,Drama\n"
	ratingsData := "tconst\taverageRating\tnumVotes\n" +
		"tt002\t7.8\t1234\n"

	if err := os.WriteFile(basics, []byte(basicsData), 0644); err != nil {
		t.Fatalf("failed to write basics: %v", err)
	}
	if err := os.WriteFile(ratings, []byte(ratingsData), 0644); err != nil {
		t.Fatalf("failed to write ratings: %v", err)
	}

	refs, err := refdata.Load(basics, ratings)
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}
	return refs
}

// A detail page with only a budget and no cast produces a row whose
// remaining fields are all null, never an error.
func TestExtractBudgetOnlyPage(t *testing.T) {
	html := `<html><body>
		<li data-testid="title-boxoffice-budget">
			<ul><li class="ipc-inline-list__item">$1,000,000 (estimated)</li></ul>
		</li>
	</body></html>`

	db := newTestDB(t)
	fetcher := testFetcher("https://x")
	extractor := NewExtractor(
		fetcher,
		NewPopularityResolver(fetcher),
		NewPersonCache(repository.NewPersonRepository(db)),
		refdata.Empty(),
		quietLogger(),
	)

	title := domain.Title{
		SequenceIndex: 0,
		MovieName:     "M1",
		Link:          "https://x/title/tt001/",
		Genre:         "Drama",
	}
	got := extractor.Extract(context.Background(), parseDoc(t, html), title)

	if got.MovieName != "M1" {
		t.Errorf("MovieName = %q, want M1", got.MovieName)
	}
	if got.Budget == nil || *got.Budget != 1000000 {
		t.Errorf("Budget = %v, want 1000000", got.Budget)
	}
	if got.Gross != nil {
		t.Errorf("Gross = %v, want nil", *got.Gross)
	}
	if got.Genre != "Drama" {
		t.Errorf("Genre = %q, want Drama", got.Genre)
	}
	if got.Runtime != nil || got.Rating != nil || got.Vote != nil {
		t.Errorf("reference fields = %v/%v/%v, want all nil", got.Runtime, got.Rating, got.Vote)
	}
	if got.PopActor1 != nil || got.PopActor2 != nil || got.PopActor3 != nil || got.PopDirector != nil {
		t.Error("popularity fields should all be nil on a page without credits")
	}
	if got.Link != "https://x/title/tt001/" {
		t.Errorf("Link = %q, want original link", got.Link)
	}
}

func TestExtractFullPage(t *testing.T) {
	var personFetches int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/name/") {
			atomic.AddInt64(&personFetches, 1)
			w.Write([]byte(personPage(`<span class="ipc-rating-star--rating">8.0</span>`)))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	html := `<html><body>
		<li data-testid="title-pc-principal-credit"><a href="/name/nm0000010/">Director D</a></li>
		<a data-testid="title-cast-item__actor" href="/name/nm0000001/">Actor One</a>
		<a data-testid="title-cast-item__actor" href="/name/nm0000002/">Actor Two</a>
		<li data-testid="title-boxoffice-budget">
			<ul><li class="ipc-inline-list__item">€8,000,000</li></ul>
		</li>
		<li data-testid="title-boxoffice-cumulativeworldwidegross">
			<span class="ipc-metadata-list-item__list-content-item">$2,500,000</span>
		</li>
	</body></html>`

	db := newTestDB(t)
	personRepo := repository.NewPersonRepository(db)
	fetcher := testFetcher(srv.URL)
	extractor := NewExtractor(
		fetcher,
		NewPopularityResolver(fetcher),
		NewPersonCache(personRepo),
		writeRefData(t),
		quietLogger(),
	)

	title := domain.Title{
		SequenceIndex: 1,
		MovieName:     "M2",
		Link:          srv.URL + "/title/tt002/",
		Genre:         "Action",
	}
	got := extractor.Extract(context.Background(), parseDoc(t, html), title)

	if got.Budget == nil || *got.Budget != 8960000 {
		t.Errorf("Budget = %v, want 8960000", got.Budget)
	}
	if got.Gross == nil || *got.Gross != 2500000 {
		t.Errorf("Gross = %v, want 2500000", got.Gross)
	}
	if got.PopActor1 == nil || *got.PopActor1 != 8.0 {
		t.Errorf("PopActor1 = %v, want 8.0", got.PopActor1)
	}
	if got.PopActor2 == nil || *got.PopActor2 != 8.0 {
		t.Errorf("PopActor2 = %v, want 8.0", got.PopActor2)
	}
	if got.PopActor3 != nil {
		t.Errorf("PopActor3 = %v, want nil for a missing third slot", *got.PopActor3)
	}
	if got.PopDirector == nil || *got.PopDirector != 8.0 {
		t.Errorf("PopDirector = %v, want 8.0", got.PopDirector)
	}
	if got.Runtime == nil || *got.Runtime != 120 {
		t.Errorf("Runtime = %v, want 120", got.Runtime)
	}
	if got.Rating == nil || *got.Rating != 7.8 {
		t.Errorf("Rating = %v, want 7.8", got.Rating)
	}
	if got.Vote == nil || *got.Vote != 1234 {
		t.Errorf("Vote = %v, want 1234", got.Vote)
	}

	// Three distinct people, three person-page fetches.
	if n := atomic.LoadInt64(&personFetches); n != 3 {
		t.Errorf("person fetches = %d, want 3", n)
	}

	// Cache entries were written through with display names.
	person, err := personRepo.GetByID(context.Background(), "nm0000001")
	if err != nil {
		t.Fatalf("cached person missing: %v", err)
	}
	if person.PersonName != "Actor One" {
		t.Errorf("PersonName = %q, want %q", person.PersonName, "Actor One")
	}

	// A second extraction resolves every slot from the cache.
	extractor.Extract(context.Background(), parseDoc(t, html), title)
	if n := atomic.LoadInt64(&personFetches); n != 3 {
		t.Errorf("person fetches after cached pass = %d, want 3", n)
	}
}

// A fetch failure on a person page nulls that slot only; the row still
// carries everything else.
func TestExtractPersonFetchFailureDegradesSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	html := `<html><body>
		<a data-testid="title-cast-item__actor" href="/name/nm0000001/">Actor One</a>
		<li data-testid="title-boxoffice-budget">
			<ul><li class="ipc-inline-list__item">$500</li></ul>
		</li>
	</body></html>`

	db := newTestDB(t)
	fetcher := testFetcher(srv.URL)
	extractor := NewExtractor(
		fetcher,
		NewPopularityResolver(fetcher),
		NewPersonCache(repository.NewPersonRepository(db)),
		refdata.Empty(),
		quietLogger(),
	)

	ctx := quietLogger().WithContext(context.Background())
	got := extractor.Extract(ctx, parseDoc(t, html), domain.Title{
		MovieName: "M3",
		Link:      srv.URL + "/title/tt003/",
		Genre:     "Horror",
	})

	if got.PopActor1 != nil {
		t.Errorf("PopActor1 = %v, want nil after fetch failure", *got.PopActor1)
	}
	if got.Budget == nil || *got.Budget != 500 {
		t.Errorf("Budget = %v, want 500", got.Budget)
	}
}

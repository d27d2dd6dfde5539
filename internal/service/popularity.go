package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZahraSafaei1272/WebScraping/internal/scraper"
)

const (
	knownForSelector   = `div[data-testid="shoveler-items-container"]`
	starRatingSelector = `span.ipc-rating-star--rating`
)

// PopularityResolver computes a person's popularity score from their
// profile page: the mean of the star ratings in the "Known For"
// section, rounded to two decimals. It owns the person-page fetch.
type PopularityResolver struct {
	fetcher *scraper.Fetcher
}

// NewPopularityResolver creates a new PopularityResolver.
// Parameters:
//   - fetcher: page fetcher used to load person profile pages.
// Returns:
//   - *PopularityResolver: resolver instance.
func NewPopularityResolver(fetcher *scraper.Fetcher) *PopularityResolver {
	return &PopularityResolver{fetcher: fetcher}
}

// Resolve fetches a person's profile page and scores it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - personURL: absolute URL of the person's profile page.
// Returns:
//   - *float64: popularity score, or nil when the page has no usable
//     known-for ratings (not an error).
//   - error: *scraper.FetchError when the page could not be fetched.
func (r *PopularityResolver) Resolve(ctx context.Context, personURL string) (*float64, error) {
	doc, err := r.fetcher.GetDocument(ctx, personURL)
	if err != nil {
		return nil, err
	}
	return scoreKnownFor(doc), nil
}

// scoreKnownFor extracts the accepted ratings and averages them.
// Values that fail to parse or fall outside [0, 10] are discarded.
func scoreKnownFor(doc *goquery.Document) *float64 {
	section := doc.Find(knownForSelector)
	if section.Length() == 0 {
		return nil
	}

	var ratings []float64
	section.Find(starRatingSelector).Each(func(_ int, s *goquery.Selection) {
		value, err := strconv.ParseFloat(strings.TrimSpace(s.Text()), 64)
		if err != nil {
			return
		}
		if value < 0 || value > 10 {
			return
		}
		ratings = append(ratings, value)
	})

	if len(ratings) == 0 {
		return nil
	}

	var sum float64
	for _, v := range ratings {
		sum += v
	}
	mean := math.Round(sum/float64(len(ratings))*100) / 100
	return &mean
}

// Package refdata loads the IMDb reference datasets (title.basics.tsv
// and title.ratings.tsv) into an immutable lookup handle. The handle is
// built once at startup and passed to consumers read-only; a missing
// title id degrades to nil fields, never to an error.
package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// sentinel used by the IMDb datasets for "no value"
const noValue = `\N`

// BasicsRow holds the fields consumed from title.basics.tsv.
type BasicsRow struct {
	TitleType      string
	PrimaryTitle   string
	RuntimeMinutes *int64
	Genres         string
}

// RatingsRow holds the fields consumed from title.ratings.tsv.
type RatingsRow struct {
	AverageRating *float64
	NumVotes      *int64
}

// ReferenceSet is the read-only reference-data handle keyed by title id.
type ReferenceSet struct {
	basics  map[string]BasicsRow
	ratings map[string]RatingsRow
}

// Load reads both reference datasets.
// Parameters:
//   - basicsPath: path to title.basics.tsv.
//   - ratingsPath: path to title.ratings.tsv.
// Returns:
//   - *ReferenceSet: loaded handle.
//   - error: non-nil if either file is missing or malformed.
func Load(basicsPath, ratingsPath string) (*ReferenceSet, error) {
	basics, err := loadBasics(basicsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load title basics: %w", err)
	}
	ratings, err := loadRatings(ratingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load title ratings: %w", err)
	}
	return &ReferenceSet{basics: basics, ratings: ratings}, nil
}

// LoadBasics reads only the basics dataset, for tooling that runs
// before the ratings file is available. Ratings lookups on the
// returned set always miss.
// Parameters:
//   - basicsPath: path to title.basics.tsv.
// Returns:
//   - *ReferenceSet: loaded handle without ratings.
//   - error: non-nil if the file is missing or malformed.
func LoadBasics(basicsPath string) (*ReferenceSet, error) {
	basics, err := loadBasics(basicsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load title basics: %w", err)
	}
	return &ReferenceSet{basics: basics, ratings: map[string]RatingsRow{}}, nil
}

// Empty returns a ReferenceSet with no rows. Every lookup misses.
func Empty() *ReferenceSet {
	return &ReferenceSet{
		basics:  map[string]BasicsRow{},
		ratings: map[string]RatingsRow{},
	}
}

// Basics returns the basics row for a title id.
func (s *ReferenceSet) Basics(titleID string) (BasicsRow, bool) {
	row, ok := s.basics[titleID]
	return row, ok
}

// Ratings returns the ratings row for a title id.
func (s *ReferenceSet) Ratings(titleID string) (RatingsRow, bool) {
	row, ok := s.ratings[titleID]
	return row, ok
}

// Runtime returns the runtime minutes for a title id, nil when unknown.
func (s *ReferenceSet) Runtime(titleID string) *int64 {
	if row, ok := s.basics[titleID]; ok {
		return row.RuntimeMinutes
	}
	return nil
}

// Rating returns the average rating and vote count for a title id,
// nil fields when unknown.
func (s *ReferenceSet) Rating(titleID string) (*float64, *int64) {
	if row, ok := s.ratings[titleID]; ok {
		return row.AverageRating, row.NumVotes
	}
	return nil, nil
}

// TitleIDFromLink extracts the title id (e.g. tt0000001) from a detail
// page link. The id is the 5th '/'-delimited segment of the URL.
func TitleIDFromLink(link string) string {
	parts := strings.Split(link, "/")
	if len(parts) > 4 {
		return parts[4]
	}
	return ""
}

func loadBasics(path string) (map[string]BasicsRow, error) {
	rows := make(map[string]BasicsRow)
	err := readTSV(path, func(get func(column string) string) {
		tconst := get("tconst")
		if tconst == "" {
			return
		}
		rows[tconst] = BasicsRow{
			TitleType:      get("titleType"),
			PrimaryTitle:   get("primaryTitle"),
			RuntimeMinutes: parseInt(get("runtimeMinutes")),
			Genres:         get("genres"),
		}
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func loadRatings(path string) (map[string]RatingsRow, error) {
	rows := make(map[string]RatingsRow)
	err := readTSV(path, func(get func(column string) string) {
		tconst := get("tconst")
		if tconst == "" {
			return
		}
		rows[tconst] = RatingsRow{
			AverageRating: parseFloat(get("averageRating")),
			NumVotes:      parseInt(get("numVotes")),
		}
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// readTSV streams a headered tab-separated file, calling visit with a
// column accessor per data row. The \N sentinel reads as empty.
func readTSV(path string, visit func(get func(column string) string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		visit(func(column string) string {
			i, ok := index[column]
			if !ok || i >= len(record) {
				return ""
			}
			v := strings.TrimSpace(record[i])
			if v == noValue {
				return ""
			}
			return v
		})
	}
	return nil
}

func parseInt(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

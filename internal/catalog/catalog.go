// Package catalog loads the ordered movie list and its positionally
// aligned genre list from CSV files. Ordering is significant: the
// 0-based row position becomes the durable sequence index that resume
// is keyed by.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
)

// Entry is one row of the joined movie/genre input.
type Entry struct {
	SequenceIndex int
	MovieName     string
	Link          string
	Genre         string
}

// Catalog is the immutable ordered movie list for a run.
type Catalog struct {
	entries []Entry
}

// Load reads the links CSV and the genre CSV and joins them by row
// position. The two files must have the same row count and ordering;
// the genre file repeats the movie name so every row can be checked
// against the links row at the same index. Any mismatch is a startup
// precondition violation, not a per-item error.
// Parameters:
//   - linksPath: CSV with columns movie_name,link.
//   - genresPath: CSV with columns movie_name,genre, positionally
//     aligned with the links file.
// Returns:
//   - *Catalog: loaded catalog.
//   - error: non-nil if a file is missing, malformed, or misaligned.
func Load(linksPath, genresPath string) (*Catalog, error) {
	links, err := readColumns(linksPath, "movie_name", "link")
	if err != nil {
		return nil, fmt.Errorf("failed to load movie links: %w", err)
	}
	genres, err := readColumns(genresPath, "movie_name", "genre")
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	if len(links) != len(genres) {
		return nil, fmt.Errorf("catalog misaligned: %d movies but %d genre rows", len(links), len(genres))
	}

	entries := make([]Entry, len(links))
	for i := range links {
		if links[i][0] != genres[i][0] {
			return nil, fmt.Errorf("catalog misaligned: row %d is %q in the links file but %q in the genre file",
				i, links[i][0], genres[i][0])
		}
		entries[i] = Entry{
			SequenceIndex: i,
			MovieName:     links[i][0],
			Link:          links[i][1],
			Genre:         genres[i][1],
		}
	}
	return &Catalog{entries: entries}, nil
}

// LoadLinks reads just the ordered links CSV, for tooling that runs
// before the genre file exists.
// Parameters:
//   - linksPath: CSV with columns movie_name,link.
// Returns:
//   - []Entry: ordered entries with empty genres.
//   - error: non-nil if the file is missing or malformed.
func LoadLinks(linksPath string) ([]Entry, error) {
	links, err := readColumns(linksPath, "movie_name", "link")
	if err != nil {
		return nil, fmt.Errorf("failed to load movie links: %w", err)
	}
	entries := make([]Entry, len(links))
	for i := range links {
		entries[i] = Entry{
			SequenceIndex: i,
			MovieName:     links[i][0],
			Link:          links[i][1],
		}
	}
	return entries, nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the ordered catalog entries.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Titles converts the catalog into status rows to seed the store with.
func (c *Catalog) Titles() []domain.Title {
	titles := make([]domain.Title, len(c.entries))
	for i, e := range c.entries {
		titles[i] = domain.Title{
			SequenceIndex: e.SequenceIndex,
			MovieName:     e.MovieName,
			Link:          e.Link,
			Genre:         e.Genre,
			Status:        domain.TitleStatusPending,
		}
	}
	return titles
}

// readColumns reads the named columns from a headered CSV file,
// preserving row order.
func readColumns(path string, columns ...string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	header := records[0]
	indexes := make([]int, len(columns))
	for i, col := range columns {
		indexes[i] = -1
		for j, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), col) {
				indexes[i] = j
				break
			}
		}
		if indexes[i] == -1 {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			if idx < len(record) {
				row[i] = strings.TrimSpace(record[idx])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

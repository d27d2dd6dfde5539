// Command genres derives the positionally aligned genre CSV for the
// movie list by joining each title link against title.basics.tsv.
// Titles missing from the dataset get the literal genre "None" so the
// output keeps the same row count and ordering as the input.
package main

import (
	"encoding/csv"
	"flag"
	"os"
	"regexp"

	"github.com/ZahraSafaei1272/WebScraping/internal/catalog"
	"github.com/ZahraSafaei1272/WebScraping/internal/config"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/refdata"
)

var titleIDPattern = regexp.MustCompile(`tt\d+`)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "imdb-genres",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	outPath := flag.String("out", "", "Output CSV path (overrides config genres_path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	path := cfg.Input.GenresPath
	if *outPath != "" {
		path = *outPath
	}

	entries, err := catalog.LoadLinks(cfg.Input.LinksPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load movie links")
	}

	// Only basics is consumed here; the ratings file may not exist yet.
	refs, err := refdata.LoadBasics(cfg.Input.BasicsPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load title basics")
	}

	f, err := os.Create(path)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to create output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"movie_name", "link", "genre"}); err != nil {
		appLogger.WithError(err).Fatal("Failed to write header")
	}

	matched := 0
	for _, e := range entries {
		genre := "None"
		if id := titleIDPattern.FindString(e.Link); id != "" {
			if row, ok := refs.Basics(id); ok && row.TitleType == "movie" && row.Genres != "" {
				genre = row.Genres
				matched++
			}
		}
		if err := w.Write([]string{e.MovieName, e.Link, genre}); err != nil {
			appLogger.WithError(err).Fatal("Failed to write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		appLogger.WithError(err).Fatal("Failed to flush output")
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldCount: len(entries),
		"matched":         matched,
		"path":            path,
	}).Info("Wrote genre file")
}

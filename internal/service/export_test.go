package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
)

func TestExportWritesFixedColumnOrder(t *testing.T) {
	db := newTestDB(t)
	movies := repository.NewMovieResultRepository(db)
	ctx := quietLogger().WithContext(context.Background())

	budget := int64(1000000)
	rating := 7.8
	votes := int64(1234)
	runtime := int64(120)
	pop := 8.25

	full := &domain.MovieResult{
		MovieName:   "Full",
		Budget:      &budget,
		Gross:       &budget,
		Genre:       "Action,Drama",
		Runtime:     &runtime,
		Rating:      &rating,
		Vote:        &votes,
		PopActor1:   &pop,
		PopDirector: &pop,
		Link:        "https://x/title/tt001/",
	}
	sparse := &domain.MovieResult{
		MovieName: "Sparse",
		Genre:     "None",
		Link:      "https://x/title/tt002/",
	}
	if err := movies.Upsert(ctx, full); err != nil {
		t.Fatalf("upsert full: %v", err)
	}
	if err := movies.Upsert(ctx, sparse); err != nil {
		t.Fatalf("upsert sparse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "movies_data.csv")
	exporter := NewExporter(movies, quietLogger())
	if err := exporter.Export(ctx, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "movie_name,budget,gross,genre,runtime,rating,vote,pop_actor1,pop_actor2,pop_actor3,pop_director,link\n" +
		"Full,1000000,1000000,\"Action,Drama\",120,7.8,1234,8.25,,,8.25,https://x/title/tt001/\n" +
		"Sparse,,,None,,,,,,,,https://x/title/tt002/\n"
	if string(data) != want {
		t.Errorf("export output mismatch:\ngot:\n%s\nwant:\n%s", data, want)
	}

	// Re-running overwrites, not appends.
	if err := exporter.Export(ctx, path); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("re-read output: %v", err)
	}
	if string(again) != want {
		t.Error("re-export changed the output file")
	}
}

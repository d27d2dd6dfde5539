package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
)

func seedTitles(t *testing.T, repo *TitleRepository, n int) {
	t.Helper()
	titles := make([]domain.Title, n)
	for i := 0; i < n; i++ {
		titles[i] = domain.Title{
			SequenceIndex: i,
			MovieName:     fmt.Sprintf("M%d", i+1),
			Link:          fmt.Sprintf("https://x/title/tt%03d/", i+1),
			Genre:         "Drama",
			Status:        domain.TitleStatusPending,
		}
	}
	if err := repo.SyncCatalog(context.Background(), titles); err != nil {
		t.Fatalf("SyncCatalog: %v", err)
	}
}

func TestTitleRepositoryNextBatchOrderAndLimit(t *testing.T) {
	repo := NewTitleRepository(openTestDB(t))
	ctx := context.Background()
	seedTitles(t, repo, 5)

	batch, err := repo.NextBatch(ctx, 3)
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("batch size = %d, want 3", len(batch))
	}
	for i, title := range batch {
		if title.SequenceIndex != i {
			t.Errorf("batch[%d].SequenceIndex = %d, want %d", i, title.SequenceIndex, i)
		}
	}
}

func TestTitleRepositoryStatusTransitions(t *testing.T) {
	repo := NewTitleRepository(openTestDB(t))
	ctx := context.Background()
	seedTitles(t, repo, 3)

	if err := repo.MarkDone(ctx, 0); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if err := repo.MarkFailed(ctx, 1, "status 503"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	// Done titles drop out of the batch; failed ones stay eligible.
	batch, err := repo.NextBatch(ctx, 10)
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch size = %d, want 2", len(batch))
	}
	if batch[0].SequenceIndex != 1 || batch[0].Status != domain.TitleStatusFailed {
		t.Errorf("batch[0] = %d/%s, want 1/failed", batch[0].SequenceIndex, batch[0].Status)
	}
	if batch[0].Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", batch[0].Attempts)
	}
	if batch[0].LastError != "status 503" {
		t.Errorf("LastError = %q, want recorded reason", batch[0].LastError)
	}

	remaining, err := repo.CountRemaining(ctx)
	if err != nil {
		t.Fatalf("CountRemaining: %v", err)
	}
	if remaining != 2 {
		t.Errorf("CountRemaining = %d, want 2", remaining)
	}
}

// Re-syncing the catalog must not reset statuses already recorded.
func TestTitleRepositorySyncCatalogIdempotent(t *testing.T) {
	repo := NewTitleRepository(openTestDB(t))
	ctx := context.Background()
	seedTitles(t, repo, 3)

	if err := repo.MarkDone(ctx, 0); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	seedTitles(t, repo, 3)

	done, err := repo.CountByStatus(ctx, domain.TitleStatusDone)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if done != 1 {
		t.Errorf("done count after re-sync = %d, want 1", done)
	}
}

package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ZahraSafaei1272/WebScraping/internal/domain"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
	"github.com/ZahraSafaei1272/WebScraping/internal/scraper"
)

// RunOutcome is the terminal state of a batch invocation.
type RunOutcome string

const (
	// OutcomeBatchComplete means the batch finished but titles remain.
	OutcomeBatchComplete RunOutcome = "batch_complete"
	// OutcomeAllComplete means every catalog title is marked done.
	OutcomeAllComplete RunOutcome = "all_complete"
)

// RunStats summarizes one batch invocation.
type RunStats struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Remaining int64
	Outcome   RunOutcome
	Duration  time.Duration
}

// SchedulerConfig holds batch scheduling parameters.
type SchedulerConfig struct {
	BatchSize int           // item cap per invocation
	MinDelay  time.Duration // politeness delay lower bound
	MaxDelay  time.Duration // politeness delay upper bound
}

// Scheduler drives one daily slice over the catalog. Resume is keyed by
// durable per-title status: each run selects the titles not yet marked
// done, in ascending sequence order, so a title whose fetch failed is
// retried on a later run instead of being silently skipped.
type Scheduler struct {
	titles    *repository.TitleRepository
	movies    *repository.MovieResultRepository
	runs      *repository.ScrapeRunRepository
	fetcher   *scraper.Fetcher
	extractor *Extractor
	cfg       SchedulerConfig
	logger    *logger.Logger
	rng       *rand.Rand
}

// NewScheduler creates a new Scheduler.
// Parameters:
//   - titles: per-title status repository.
//   - movies: result row repository.
//   - runs: scrape run bookkeeping repository.
//   - fetcher: detail page fetcher.
//   - extractor: detail extractor.
//   - cfg: batch parameters.
//   - log: structured logger.
// Returns:
//   - *Scheduler: scheduler instance.
func NewScheduler(
	titles *repository.TitleRepository,
	movies *repository.MovieResultRepository,
	runs *repository.ScrapeRunRepository,
	fetcher *scraper.Fetcher,
	extractor *Extractor,
	cfg SchedulerConfig,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		titles:    titles,
		movies:    movies,
		runs:      runs,
		fetcher:   fetcher,
		extractor: extractor,
		cfg:       cfg,
		logger:    log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// log returns a logger from context if available, otherwise returns the injected logger
func (s *Scheduler) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// RunBatch processes up to BatchSize titles and returns run statistics.
// Per-item fetch failures are recorded and skipped; store failures
// abort the run, since they threaten the resume invariant.
// Parameters:
//   - ctx: context for cancellation; a cancelled run stops after the
//     current item with everything processed so far durably committed.
// Returns:
//   - *RunStats: counters and terminal outcome.
//   - error: non-nil on store failure or cancellation.
func (s *Scheduler) RunBatch(ctx context.Context) (*RunStats, error) {
	start := time.Now()
	// Make sure the effective logger rides in the context so nested
	// calls and the Entry API pick it up.
	ctx = s.log(ctx).WithContext(ctx)

	batch, err := s.titles.NextBatch(ctx, s.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to select batch: %w", err)
	}

	if len(batch) == 0 {
		// Re-running after full completion is a no-op, not an error.
		s.log(ctx).Info("All titles processed")
		return &RunStats{Outcome: OutcomeAllComplete}, nil
	}

	run, err := s.runs.Start(ctx, len(batch))
	if err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	// The run ID travels in the context so every log line below it,
	// including the extractor's, carries it.
	ctx = logger.SetRunID(ctx, run.ID)
	stats := &RunStats{RunID: run.ID, Total: len(batch)}
	log := s.log(ctx)

	log.WithFields(logger.Fields{
		"first_index":     batch[0].SequenceIndex,
		"last_index":      batch[len(batch)-1].SequenceIndex,
		logger.FieldCount: len(batch),
	}).Info("Starting batch")

	for i, title := range batch {
		if ctx.Err() != nil {
			s.finishRun(run, stats)
			return stats, ctx.Err()
		}

		itemLog := log.WithFields(logger.Fields{
			logger.FieldMovie:    title.MovieName,
			logger.FieldSequence: title.SequenceIndex,
		})
		itemLog.WithField("progress", fmt.Sprintf("%d/%d", i+1, len(batch))).Info("Processing title")

		if err := s.processTitle(ctx, title, itemLog, stats, run); err != nil {
			s.finishRun(run, stats)
			return stats, err
		}

		// Politeness delay between items, not after the last one.
		if i < len(batch)-1 {
			if err := s.politenessDelay(ctx); err != nil {
				s.finishRun(run, stats)
				return stats, err
			}
		}
	}

	remaining, err := s.titles.CountRemaining(ctx)
	if err != nil {
		s.finishRun(run, stats)
		return stats, fmt.Errorf("failed to count remaining titles: %w", err)
	}
	stats.Remaining = remaining
	if remaining == 0 {
		stats.Outcome = OutcomeAllComplete
	} else {
		stats.Outcome = OutcomeBatchComplete
	}

	s.finishRun(run, stats)
	stats.Duration = time.Since(start)

	logger.With(logger.Fields{
		logger.FieldStatus: string(stats.Outcome),
	}).WithDuration(stats.Duration.Milliseconds()).
		Info(ctx, "Batch finished: succeeded=%d, failed=%d, remaining=%d",
			stats.Succeeded, stats.Failed, stats.Remaining)

	return stats, nil
}

// processTitle handles a single catalog title. A fetch failure marks
// the title failed and returns nil; only store failures return an error.
func (s *Scheduler) processTitle(ctx context.Context, title domain.Title, itemLog *logger.Logger, stats *RunStats, run *domain.ScrapeRun) error {
	doc, err := s.fetcher.GetDocument(ctx, title.Link)
	if err != nil {
		itemLog.WithError(err).WithField(logger.FieldURL, title.Link).Warn("Detail page fetch failed")
		if markErr := s.titles.MarkFailed(ctx, title.SequenceIndex, err.Error()); markErr != nil {
			return fmt.Errorf("failed to mark title failed: %w", markErr)
		}
		stats.Failed++
		run.FailedItems++
		return nil
	}

	result := s.extractor.Extract(ctx, doc, title)
	if err := s.movies.Upsert(ctx, result); err != nil {
		return fmt.Errorf("failed to upsert result for %q: %w", title.MovieName, err)
	}
	if err := s.titles.MarkDone(ctx, title.SequenceIndex); err != nil {
		return fmt.Errorf("failed to mark title done: %w", err)
	}

	stats.Succeeded++
	run.SucceededItems++
	itemLog.Info("Saved result row")
	return nil
}

// finishRun records final counters; bookkeeping failures are logged,
// never fatal.
func (s *Scheduler) finishRun(run *domain.ScrapeRun, stats *RunStats) {
	status := domain.RunStatusCompleted
	if stats.Succeeded == 0 && stats.Failed > 0 {
		status = domain.RunStatusFailed
	}
	if err := s.runs.Complete(context.Background(), run, status); err != nil {
		s.logger.WithError(err).WithField(logger.FieldRunID, run.ID).Error("Failed to record run completion")
	}
}

// politenessDelay sleeps a uniform random duration in [MinDelay,
// MaxDelay], throttling the request rate against the remote service.
func (s *Scheduler) politenessDelay(ctx context.Context) error {
	d := s.cfg.MinDelay
	if spread := s.cfg.MaxDelay - s.cfg.MinDelay; spread > 0 {
		d += time.Duration(s.rng.Float64() * float64(spread))
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

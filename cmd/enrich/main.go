package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/ZahraSafaei1272/WebScraping/internal/catalog"
	"github.com/ZahraSafaei1272/WebScraping/internal/config"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/refdata"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
	"github.com/ZahraSafaei1272/WebScraping/internal/scraper"
	"github.com/ZahraSafaei1272/WebScraping/internal/service"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "imdb-enrich",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	batchSize := flag.Int("batch", 0, "Override batch size (items per run)")
	exportOnDone := flag.Bool("export", true, "Export the CSV once every title is processed")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if *batchSize > 0 {
		cfg.Scraper.BatchSize = *batchSize
	}

	appLogger.WithFields(logger.Fields{
		"batch_size": cfg.Scraper.BatchSize,
		"links":      cfg.Input.LinksPath,
		"database":   cfg.Database.DSN(),
	}).Info("Starting enrichment run")

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Load the ordered catalog and the reference datasets. Both are
	// startup preconditions: a missing or misaligned file aborts here.
	cat, err := catalog.Load(cfg.Input.LinksPath, cfg.Input.GenresPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load catalog")
	}
	refs, err := refdata.Load(cfg.Input.BasicsPath, cfg.Input.RatingsPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load reference datasets")
	}

	// Initialize repositories
	titleRepo := repository.NewTitleRepository(db)
	movieRepo := repository.NewMovieResultRepository(db)
	personRepo := repository.NewPersonRepository(db)
	runRepo := repository.NewScrapeRunRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = appLogger.WithContext(ctx)

	if err := titleRepo.SyncCatalog(ctx, cat.Titles()); err != nil {
		appLogger.WithError(err).Fatal("Failed to sync catalog into store")
	}

	// Initialize services
	fetcher := scraper.NewFetcher(&scraper.Config{
		BaseURL:   cfg.Scraper.BaseURL,
		UserAgent: cfg.Scraper.UserAgent,
		Timeout:   cfg.Scraper.FetchTimeout,
	})
	resolver := service.NewPopularityResolver(fetcher)
	personCache := service.NewPersonCache(personRepo)
	extractor := service.NewExtractor(fetcher, resolver, personCache, refs, appLogger)
	scheduler := service.NewScheduler(titleRepo, movieRepo, runRepo, fetcher, extractor,
		service.SchedulerConfig{
			BatchSize: cfg.Scraper.BatchSize,
			MinDelay:  cfg.Scraper.MinDelay,
			MaxDelay:  cfg.Scraper.MaxDelay,
		}, appLogger)

	stats, err := scheduler.RunBatch(logger.SetComponent(ctx, "scheduler"))
	if err != nil {
		appLogger.WithError(err).Fatal("Batch run aborted")
	}

	if stats.Outcome == service.OutcomeAllComplete && *exportOnDone {
		exporter := service.NewExporter(movieRepo, appLogger)
		if err := exporter.Export(logger.SetComponent(ctx, "export"), cfg.Output.CSVPath); err != nil {
			appLogger.WithError(err).Fatal("Failed to export results")
		}
	}
}

package main

import (
	"context"
	"flag"

	"github.com/ZahraSafaei1272/WebScraping/internal/config"
	"github.com/ZahraSafaei1272/WebScraping/internal/logger"
	"github.com/ZahraSafaei1272/WebScraping/internal/repository"
	"github.com/ZahraSafaei1272/WebScraping/internal/service"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "imdb-export",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	outPath := flag.String("out", "", "Output CSV path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	path := cfg.Output.CSVPath
	if *outPath != "" {
		path = *outPath
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx := logger.SetComponent(appLogger.WithContext(context.Background()), "export")
	movieRepo := repository.NewMovieResultRepository(db)
	exporter := service.NewExporter(movieRepo, appLogger)
	if err := exporter.Export(ctx, path); err != nil {
		appLogger.WithError(err).Fatal("Failed to export results")
	}
}

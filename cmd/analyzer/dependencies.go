package main

import (
	"log/slog"

	"github.com/FACorreiaa/findoc-insights/internal/categorize"
	"github.com/FACorreiaa/findoc-insights/internal/cluster"
	"github.com/FACorreiaa/findoc-insights/internal/ocr"
	"github.com/FACorreiaa/findoc-insights/internal/ocr/tesseract"
	"github.com/FACorreiaa/findoc-insights/internal/pipeline"
	"github.com/FACorreiaa/findoc-insights/pkg/config"
	"github.com/FACorreiaa/findoc-insights/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config     *config.Config
	Logger     *slog.Logger
	Recognizer ocr.Recognizer
	Categories *categorize.Table
	Pipeline   *pipeline.Pipeline
	Artifacts  storage.Store
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	store, err := storage.NewLocalStore(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	deps.Artifacts = store

	deps.Recognizer = tesseract.New(cfg.OCR.Language)
	deps.Categories = categorize.Default()
	deps.Pipeline = pipeline.New(logger, deps.Recognizer, deps.Categories, cluster.Options{
		Tiers:         cfg.Cluster.Tiers,
		Seed:          cfg.Cluster.Seed,
		MaxIterations: cfg.Cluster.MaxIterations,
	})

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

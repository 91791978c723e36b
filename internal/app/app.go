// Package app wires configs to the content pipeline and its adapters.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"finro/internal/config"
	"finro/internal/domain"
	"finro/internal/fetch"
	"finro/internal/history"
	"finro/internal/homepage"
	"finro/internal/index"
	"finro/internal/logging"
	"finro/internal/pipeline"
	"finro/internal/ports"
	"finro/internal/publish"
	"finro/internal/sitemap"
	"finro/internal/summarize"
)

// Application owns the shared adapters; per-category pipelines are built on
// demand because the feed entry cap differs per category.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *http.Client
	recorder ports.HistoryRecorder
	closer   func() error
}

// New builds a runnable application instance. The history database is
// optional: when it cannot be opened the application degrades to a no-op
// recorder instead of failing.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var (
		recorder ports.HistoryRecorder = history.Noop{}
		closer   func() error
	)
	if cfg.History.Enabled {
		rec, err := history.Open(cfg.History.Path)
		if err != nil {
			baseLogger.Warn("history disabled", "path", cfg.History.Path, "error", err)
		} else {
			recorder = rec
			closer = rec.Close
		}
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		client:   &http.Client{Timeout: cfg.Timeout()},
		recorder: recorder,
		closer:   closer,
	}
}

// Close releases the history database, if any.
func (a *Application) Close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

// History exposes the recorder for the CLI reporting commands.
func (a *Application) History() ports.HistoryRecorder {
	return a.recorder
}

// RunCategory executes one category end to end. After a successful real run
// the sitemap and homepage are regenerated to cover the new documents.
func (a *Application) RunCategory(ctx context.Context, cat domain.Category, opts pipeline.Options) (domain.RunRecord, error) {
	p, err := a.buildPipeline(cat)
	if err != nil {
		return domain.RunRecord{}, err
	}

	run, err := p.Run(ctx, cat, opts)
	if err != nil {
		return run, err
	}

	if !opts.DryRun {
		if err := a.Sitemap(ctx); err != nil {
			a.logger.Warn("sitemap generation failed", "error", err)
		}
		if err := a.Homepage(ctx); err != nil {
			a.logger.Warn("homepage generation failed", "error", err)
		}
	}
	return run, nil
}

// RunAll processes every registered category in declaration order. A failed
// category does not stop the remaining ones; the first error is returned
// after all categories ran.
func (a *Application) RunAll(ctx context.Context, opts pipeline.Options) ([]domain.RunRecord, error) {
	var (
		runs     []domain.RunRecord
		firstErr error
	)
	for _, cat := range domain.Registry() {
		run, err := a.RunCategory(ctx, cat, opts)
		if err != nil {
			a.logger.Error("category run failed", "category", cat.Key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("category %s: %w", cat.Key, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, firstErr
}

// Reindex rebuilds the index documents of one category without fetching.
func (a *Application) Reindex(ctx context.Context, cat domain.Category) error {
	builder := index.NewBuilder(a.cfg, logging.Component(a.logger, "index"))
	return builder.Rebuild(ctx, cat)
}

// Sitemap regenerates sitemap.xml from the current indexes.
func (a *Application) Sitemap(ctx context.Context) error {
	gen := sitemap.NewGenerator(a.cfg, logging.Component(a.logger, "sitemap"))
	return gen.Generate(ctx, domain.Registry())
}

// Homepage rewrites index.html from the current indexes.
func (a *Application) Homepage(ctx context.Context) error {
	gen := homepage.NewGenerator(a.cfg, logging.Component(a.logger, "homepage"))
	return gen.Generate(ctx, domain.Registry())
}

func (a *Application) buildPipeline(cat domain.Category) (*pipeline.Pipeline, error) {
	ua := a.cfg.HTTP.UserAgent
	return pipeline.New(pipeline.Deps{
		Config:     a.cfg,
		Fetcher:    fetch.NewFetcher(a.client, ua, cat.FeedEntryCap, logging.Component(a.logger, "fetch")),
		Extractor:  fetch.NewExtractor(a.client, ua, logging.Component(a.logger, "extract")),
		Summarizer: summarize.New(),
		Publisher:  publish.NewWriter(a.cfg, logging.Component(a.logger, "publish")),
		Indexer:    index.NewBuilder(a.cfg, logging.Component(a.logger, "index")),
		History:    a.recorder,
		Logger:     logging.Component(a.logger, "pipeline"),
	})
}

// Package pipeline orchestrates one category run: fetch, dedup, classify,
// enrich, publish, reindex. All collaborators come in through ports so the
// whole flow is testable with fakes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"finro/internal/classify"
	"finro/internal/config"
	"finro/internal/dedup"
	"finro/internal/domain"
	"finro/internal/ports"
	"finro/internal/seo"
)

const summarySentences = 3

// A summary shorter than this is padded from extracted content when
// available.
const thinSummaryRunes = 80

// Deps collects every collaborator of a run. All fields are required
// except Logger.
type Deps struct {
	Config     config.Config
	Fetcher    ports.SourceFetcher
	Extractor  ports.ContentExtractor
	Summarizer ports.Summarizer
	Publisher  ports.Publisher
	Indexer    ports.IndexBuilder
	History    ports.HistoryRecorder
	Logger     *slog.Logger
}

// Options tunes a single invocation.
type Options struct {
	MaxArticles int  // 0 means the category default
	DryRun      bool // report what would be published, write nothing
}

type Pipeline struct {
	deps Deps
}

func New(deps Deps) (*Pipeline, error) {
	switch {
	case deps.Fetcher == nil:
		return nil, errors.New("pipeline: nil fetcher")
	case deps.Extractor == nil:
		return nil, errors.New("pipeline: nil extractor")
	case deps.Summarizer == nil:
		return nil, errors.New("pipeline: nil summarizer")
	case deps.Publisher == nil:
		return nil, errors.New("pipeline: nil publisher")
	case deps.Indexer == nil:
		return nil, errors.New("pipeline: nil indexer")
	case deps.History == nil:
		return nil, errors.New("pipeline: nil history recorder")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Pipeline{deps: deps}, nil
}

// StatePath locates the per-category dedup state file.
func StatePath(cfg config.Config, categoryKey string) string {
	return filepath.Join(cfg.DataDir(), fmt.Sprintf("seen_%s.json", categoryKey))
}

// Run processes one category end to end and returns the run report. Broken
// sources and per-article publish failures are absorbed into the report;
// only state persistence and index rebuild failures abort the run.
func (p *Pipeline) Run(ctx context.Context, cat domain.Category, opts Options) (domain.RunRecord, error) {
	run := domain.RunRecord{
		Category:  cat.Key,
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
	}

	maxArticles := opts.MaxArticles
	if maxArticles <= 0 {
		maxArticles = cat.DefaultMaxItems
	}

	store := dedup.Load(StatePath(p.deps.Config, cat.Key))
	subcats := classify.New(cat.Subcategories)
	cities := classify.New(cat.Cities)
	seoOpts := seo.Options{SiteName: p.deps.Config.Site.Name, Author: p.deps.Config.Site.Author}

	log := p.deps.Logger.With("category", cat.Key)
	log.Info("run started", "sources", len(cat.Sources), "max", maxArticles, "dry", opts.DryRun)

	accepted := p.collect(ctx, cat, &run, store, subcats, cities, seoOpts, maxArticles, opts.DryRun, log)

	for _, art := range accepted {
		if opts.DryRun {
			log.Info("would publish", "slug", art.Slug, "subcategory", art.Subcategory)
			continue
		}
		url, err := p.deps.Publisher.Publish(ctx, art)
		if err != nil {
			run.Failed++
			log.Error("publish failed", "slug", art.Slug, "error", err)
			continue
		}
		run.Published++
		log.Debug("published", "url", url)

		if err := p.deps.History.RecordArticle(ctx, art); err != nil {
			log.Warn("history article record failed", "slug", art.Slug, "error", err)
		}
	}

	if !opts.DryRun {
		if run.New > 0 {
			if err := store.Save(); err != nil {
				return run, fmt.Errorf("persist dedup state: %w", err)
			}
		}
		if err := p.deps.Indexer.Rebuild(ctx, cat); err != nil {
			return run, fmt.Errorf("rebuild indexes: %w", err)
		}
	}

	run.FinishedAt = time.Now().UTC()
	if err := p.deps.History.RecordRun(ctx, run); err != nil {
		log.Warn("history run record failed", "error", err)
	}

	log.Info("run finished",
		"fetched", run.Fetched,
		"duplicates", run.Duplicates,
		"malformed", run.Malformed,
		"new", run.New,
		"published", run.Published,
		"failed", run.Failed)
	return run, nil
}

// collect walks the category sources in declaration order and accepts up to
// maxArticles enriched articles. The dedup store is updated as entries are
// accepted, so a URL appearing twice within one run counts as a duplicate
// the second time.
func (p *Pipeline) collect(
	ctx context.Context,
	cat domain.Category,
	run *domain.RunRecord,
	store *dedup.Store,
	subcats, cities *classify.Classifier,
	seoOpts seo.Options,
	maxArticles int,
	dryRun bool,
	log *slog.Logger,
) []domain.Article {
	var accepted []domain.Article

	for _, src := range cat.Sources {
		if ctx.Err() != nil || len(accepted) >= maxArticles {
			break
		}

		entries := p.deps.Fetcher.Fetch(ctx, src)
		run.Fetched += len(entries)

		for _, entry := range entries {
			if len(accepted) >= maxArticles {
				break
			}
			if entry.Title == "" || entry.URL == "" {
				run.Malformed++
				continue
			}

			fp := seo.Fingerprint(entry.URL)
			if store.Contains(fp) {
				run.Duplicates++
				continue
			}

			text := entry.Title + " " + entry.Summary
			cls := domain.Classification{
				Subcategory: subcats.Classify(text),
				CityTags:    cities.Tags(text),
			}

			content := ""
			if !dryRun {
				content = p.deps.Extractor.Extract(ctx, entry.URL, cat.ContentRuneCap)
			}
			if content != "" && len([]rune(entry.Summary)) < thinSummaryRunes {
				if s := p.deps.Summarizer.Summarize(content, summarySentences); s != "" {
					entry.Summary = s
				}
			}

			store.Add(fp)
			run.New++
			accepted = append(accepted, seo.Enrich(entry, cls, cat, content, seoOpts))
			log.Debug("entry accepted", "title", entry.Title, "subcategory", cls.Subcategory)
		}
	}
	return accepted
}

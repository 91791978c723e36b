package ports

import (
	"context"

	"finro/internal/domain"
)

// SourceFetcher pulls raw entries from one configured source. Failures stay
// behind this boundary: implementations log and return what they have, so a
// broken source contributes zero entries without aborting the run.
type SourceFetcher interface {
	Fetch(ctx context.Context, src domain.Source) []domain.RawEntry
}

// ContentExtractor recovers the full article text behind an entry URL.
// Returns "" on any failure.
type ContentExtractor interface {
	Extract(ctx context.Context, url string, runeCap int) string
}

// Summarizer produces a short original summary from extracted text.
type Summarizer interface {
	Summarize(text string, sentences int) string
}

// Publisher renders an accepted article to a document plus a metadata
// record keyed by fingerprint. Must be safe to call twice with the same
// fingerprint (idempotent overwrite).
type Publisher interface {
	Publish(ctx context.Context, article domain.Article) (string, error)
}

// IndexBuilder rebuilds every index document of a category from the full
// set of persisted metadata records.
type IndexBuilder interface {
	Rebuild(ctx context.Context, cat domain.Category) error
}

// HistoryRecorder keeps an audit trail of runs and published articles.
// Recording is best-effort: callers log errors and continue. RecentRuns
// serves the reporting commands and may error when no trail exists.
type HistoryRecorder interface {
	RecordRun(ctx context.Context, run domain.RunRecord) error
	RecordArticle(ctx context.Context, article domain.Article) error
	RecentRuns(ctx context.Context, category string, limit int) ([]domain.RunRecord, error)
}

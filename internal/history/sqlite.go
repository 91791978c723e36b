// Package history keeps a local audit trail of pipeline runs and published
// articles in SQLite. Recording is best-effort: the pipeline logs failures
// and keeps going, so a broken database never blocks publishing.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"finro/internal/domain"
	"finro/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	category    TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	dry_run     INTEGER NOT NULL DEFAULT 0,
	fetched     INTEGER NOT NULL DEFAULT 0,
	duplicates  INTEGER NOT NULL DEFAULT 0,
	malformed   INTEGER NOT NULL DEFAULT 0,
	new_items   INTEGER NOT NULL DEFAULT 0,
	published   INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS published_articles (
	fingerprint  TEXT PRIMARY KEY,
	category     TEXT NOT NULL,
	subcategory  TEXT NOT NULL,
	title        TEXT NOT NULL,
	slug         TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	published_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_category ON runs(category, started_at);
`

// SQLiteRecorder implements the audit trail on a local SQLite file.
type SQLiteRecorder struct {
	db *sql.DB
}

var _ ports.HistoryRecorder = (*SQLiteRecorder)(nil)

// Open creates the database file (and parent directory) if needed and
// applies the schema.
func Open(path string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// RecordRun appends one row per pipeline invocation.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, run domain.RunRecord) error {
	_, err := sq.Insert("runs").
		Columns("category", "started_at", "finished_at", "dry_run",
			"fetched", "duplicates", "malformed", "new_items", "published", "failed").
		Values(run.Category,
			run.StartedAt.UTC().Format(time.RFC3339),
			run.FinishedAt.UTC().Format(time.RFC3339),
			boolToInt(run.DryRun),
			run.Fetched, run.Duplicates, run.Malformed, run.New, run.Published, run.Failed).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordArticle upserts the published-article row keyed by fingerprint, so
// a re-published article updates in place.
func (r *SQLiteRecorder) RecordArticle(ctx context.Context, article domain.Article) error {
	_, err := sq.Insert("published_articles").
		Columns("fingerprint", "category", "subcategory", "title", "slug", "source_url", "published_at").
		Values(article.Fingerprint, article.Category, article.Subcategory,
			article.Title, article.Slug, article.URL,
			time.Now().UTC().Format(time.RFC3339)).
		Suffix(`ON CONFLICT(fingerprint) DO UPDATE SET
			title = excluded.title,
			slug = excluded.slug,
			published_at = excluded.published_at`).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert article %s: %w", article.Fingerprint, err)
	}
	return nil
}

// RecentRuns returns the newest runs, optionally filtered by category.
func (r *SQLiteRecorder) RecentRuns(ctx context.Context, category string, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	q := sq.Select("category", "started_at", "finished_at", "dry_run",
		"fetched", "duplicates", "malformed", "new_items", "published", "failed").
		From("runs").
		OrderBy("id DESC").
		Limit(uint64(limit))
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []domain.RunRecord
	for rows.Next() {
		var (
			run               domain.RunRecord
			started, finished string
			dryRun            int
		)
		if err := rows.Scan(&run.Category, &started, &finished, &dryRun,
			&run.Fetched, &run.Duplicates, &run.Malformed, &run.New, &run.Published, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		run.DryRun = dryRun != 0
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Noop satisfies the recorder port when history is disabled. Writes vanish
// silently; reads report the absence.
type Noop struct{}

var _ ports.HistoryRecorder = Noop{}

func (Noop) RecordRun(context.Context, domain.RunRecord) error   { return nil }
func (Noop) RecordArticle(context.Context, domain.Article) error { return nil }

func (Noop) RecentRuns(context.Context, string, int) ([]domain.RunRecord, error) {
	return nil, errors.New("history is disabled in the configuration")
}

package domain

import "time"

// RunRecord summarizes one pipeline invocation. It doubles as the run
// report returned to the caller and the row persisted to history.
type RunRecord struct {
	Category   string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool

	Fetched    int // raw entries gathered across all sources
	Duplicates int // dropped by the dedup store (or earlier in the run)
	Malformed  int // dropped for missing title/url
	New        int // accepted after classification and enrichment
	Published  int // documents actually written
	Failed     int // per-item publish failures
}

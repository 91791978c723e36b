// Package index rebuilds the category, subcategory and city index documents
// from the full set of persisted metadata records. Rebuilds are total: every
// index is derived from scratch on each run, so a rebuild after manual
// record edits or deletions always converges.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"finro/internal/config"
	"finro/internal/domain"
	"finro/internal/ports"
)

const (
	categoryCap    = 50
	subcategoryCap = 30
	cityCap        = 20

	recordPrefix = "article_"
	recordSuffix = ".json"
)

// Builder scans the data directory and writes index_*.json documents.
type Builder struct {
	cfg    config.Config
	logger *slog.Logger
}

var _ ports.IndexBuilder = (*Builder)(nil)

func NewBuilder(cfg config.Config, logger *slog.Logger) *Builder {
	return &Builder{cfg: cfg, logger: logger}
}

// scannedRecord pairs a metadata record with its file modification time,
// the recency key used for ordering.
type scannedRecord struct {
	rec   domain.MetadataRecord
	mtime time.Time
}

// Rebuild regenerates the category index, one index per declared
// subcategory, and, when the category carries a city vocabulary, one index
// per city tag.
func (b *Builder) Rebuild(ctx context.Context, cat domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := b.scan(cat.Key)
	if err != nil {
		return err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].mtime.Equal(records[j].mtime) {
			return records[i].mtime.After(records[j].mtime)
		}
		if records[i].rec.Published != records[j].rec.Published {
			return records[i].rec.Published > records[j].rec.Published
		}
		return records[i].rec.Slug < records[j].rec.Slug
	})

	all := make([]domain.MetadataRecord, len(records))
	for i, r := range records {
		all[i] = r.rec
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if err := b.write(fmt.Sprintf("index_%s.json", cat.Key), domain.IndexDocument{
		Category: cat.Key,
		Total:    len(all),
		Updated:  now,
		Articles: capped(all, categoryCap),
	}); err != nil {
		return err
	}

	labels := append(cat.Subcategories.Labels(), domain.GeneralLabel)
	for _, label := range labels {
		subset := filter(all, func(r domain.MetadataRecord) bool { return r.Subcategory == label })
		if err := b.write(fmt.Sprintf("index_%s_%s.json", cat.Key, label), domain.IndexDocument{
			Category:    cat.Key,
			Subcategory: label,
			Total:       len(subset),
			Updated:     now,
			Articles:    capped(subset, subcategoryCap),
		}); err != nil {
			return err
		}
	}

	for _, city := range cat.Cities.Labels() {
		subset := filter(all, func(r domain.MetadataRecord) bool { return hasTag(r.CityTags, city) })
		if err := b.write(fmt.Sprintf("index_city_%s.json", city), domain.IndexDocument{
			Category: cat.Key,
			City:     city,
			Total:    len(subset),
			Updated:  now,
			Articles: capped(subset, cityCap),
		}); err != nil {
			return err
		}
	}

	if b.logger != nil {
		b.logger.Info("indexes rebuilt", "category", cat.Key, "records", len(all))
	}
	return nil
}

// scan reads every metadata record in the data directory belonging to the
// category. Unreadable or malformed records are skipped with a warning so
// one bad file cannot block the rebuild.
func (b *Builder) scan(categoryKey string) ([]scannedRecord, error) {
	entries, err := os.ReadDir(b.cfg.DataDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var out []scannedRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, recordSuffix) {
			continue
		}

		path := filepath.Join(b.cfg.DataDir(), name)
		raw, err := os.ReadFile(path)
		if err != nil {
			b.warn("record unreadable", "file", name, "error", err)
			continue
		}
		var rec domain.MetadataRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			b.warn("record malformed", "file", name, "error", err)
			continue
		}
		if rec.Category != categoryKey {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			b.warn("record stat failed", "file", name, "error", err)
			continue
		}
		out = append(out, scannedRecord{rec: rec, mtime: info.ModTime()})
	}
	return out, nil
}

func (b *Builder) write(name string, doc domain.IndexDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.MkdirAll(b.cfg.DataDir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(b.cfg.DataDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *Builder) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}

func capped(records []domain.MetadataRecord, n int) []domain.MetadataRecord {
	if len(records) > n {
		records = records[:n]
	}
	// Empty slices marshal as [] rather than null.
	if records == nil {
		records = []domain.MetadataRecord{}
	}
	return records
}

func filter(records []domain.MetadataRecord, keep func(domain.MetadataRecord) bool) []domain.MetadataRecord {
	var out []domain.MetadataRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

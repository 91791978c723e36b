// Package homepage regenerates the site landing page from the category
// indexes: one card section per category with its freshest articles.
package homepage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"finro/internal/config"
	"finro/internal/domain"
)

const (
	cardsPerSection = 6
	excerptWidth    = 150
)

type Generator struct {
	cfg    config.Config
	logger *slog.Logger
}

func NewGenerator(cfg config.Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Generate rewrites index.html under the website root. Categories whose
// index is missing render as empty sections, so the homepage stays valid
// before the first run of a category.
func (g *Generator) Generate(ctx context.Context, categories []domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := pageData{
		SiteName: g.cfg.Site.Name,
		BaseURL:  strings.TrimRight(g.cfg.Site.BaseURL, "/"),
		Author:   g.cfg.Site.Author,
	}

	total := 0
	for _, cat := range categories {
		section := sectionData{Key: cat.Key, Icon: cat.Icon, Label: cat.Label}
		for _, rec := range g.freshRecords(cat.Key) {
			section.Cards = append(section.Cards, cardData{
				Title:   rec.Title,
				Href:    fmt.Sprintf("/articles/%s/%s.html", cat.Key, rec.Slug),
				Excerpt: excerpt(rec.MetaDescription),
				Source:  rec.Source,
			})
		}
		total += len(section.Cards)
		data.Sections = append(data.Sections, section)
	}

	var buf strings.Builder
	if err := homeTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render homepage: %w", err)
	}

	path := filepath.Join(g.cfg.Paths.WebsiteDir, "index.html")
	if err := os.MkdirAll(g.cfg.Paths.WebsiteDir, 0o755); err != nil {
		return fmt.Errorf("create website dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("write homepage: %w", err)
	}

	if g.logger != nil {
		g.logger.Info("homepage rebuilt", "articles", total, "sections", len(data.Sections))
	}
	return nil
}

// freshRecords returns the newest records of a category, as ordered by the
// index builder. A missing or broken index yields no cards rather than an
// error.
func (g *Generator) freshRecords(categoryKey string) []domain.MetadataRecord {
	raw, err := os.ReadFile(filepath.Join(g.cfg.DataDir(), fmt.Sprintf("index_%s.json", categoryKey)))
	if err != nil {
		return nil
	}
	var doc domain.IndexDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		if g.logger != nil {
			g.logger.Warn("category index malformed", "category", categoryKey, "error", err)
		}
		return nil
	}
	if len(doc.Articles) > cardsPerSection {
		return doc.Articles[:cardsPerSection]
	}
	return doc.Articles
}

func excerpt(desc string) string {
	if desc == "" {
		return "Citește articolul complet."
	}
	return runewidth.Truncate(desc, excerptWidth, "...")
}

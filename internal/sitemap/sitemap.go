// Package sitemap regenerates sitemap.xml from the category indexes. Like
// the indexes it is rebuilt whole on every run.
package sitemap

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finro/internal/config"
	"finro/internal/domain"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type Generator struct {
	cfg    config.Config
	logger *slog.Logger
}

func NewGenerator(cfg config.Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Generate writes the sitemap covering the site root, one landing page per
// category, and every article present in the category indexes. Categories
// without an index yet are simply absent.
func (g *Generator) Generate(ctx context.Context, categories []domain.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base := strings.TrimRight(g.cfg.Site.BaseURL, "/")
	today := time.Now().UTC().Format("2006-01-02")

	set := urlSet{Xmlns: xmlns}
	set.URLs = append(set.URLs, urlEntry{
		Loc: base + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0",
	})

	for _, cat := range categories {
		set.URLs = append(set.URLs, urlEntry{
			Loc: fmt.Sprintf("%s/%s.html", base, cat.Key), LastMod: today, ChangeFreq: "daily", Priority: "0.8",
		})

		doc, err := g.readIndex(cat.Key)
		if err != nil {
			g.warn("category index unreadable", "category", cat.Key, "error", err)
			continue
		}
		for _, rec := range doc.Articles {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        rec.URL,
				LastMod:    lastMod(rec.Published),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	payload := append([]byte(xml.Header), out...)
	payload = append(payload, '\n')

	if err := os.WriteFile(g.cfg.SitemapPath(), payload, 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}

	if g.logger != nil {
		g.logger.Info("sitemap generated", "urls", len(set.URLs))
	}
	return nil
}

func (g *Generator) readIndex(categoryKey string) (domain.IndexDocument, error) {
	var doc domain.IndexDocument
	raw, err := os.ReadFile(filepath.Join(g.cfg.DataDir(), fmt.Sprintf("index_%s.json", categoryKey)))
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse index: %w", err)
	}
	return doc, nil
}

// lastMod reduces an article timestamp to the date sitemaps expect.
// Unparseable source dates are omitted rather than guessed.
func lastMod(published string) string {
	for _, layout := range []string{time.RFC3339, time.RFC1123, time.RFC1123Z, "2006-01-02"} {
		if ts, err := time.Parse(layout, published); err == nil {
			return ts.UTC().Format("2006-01-02")
		}
	}
	return ""
}

func (g *Generator) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}

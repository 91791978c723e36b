// Package publish renders accepted articles to static documents and writes
// the per-article metadata records the index is rebuilt from.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"finro/internal/config"
	"finro/internal/domain"
	"finro/internal/ports"
)

// Writer publishes under the configured website root:
// articles/<category>/<slug>.html and data/article_<fingerprint>.json.
type Writer struct {
	cfg    config.Config
	logger *slog.Logger
}

var _ ports.Publisher = (*Writer)(nil)

func NewWriter(cfg config.Config, logger *slog.Logger) *Writer {
	return &Writer{cfg: cfg, logger: logger}
}

// Publish renders the document and writes the metadata record, returning
// the article's canonical URL. Re-publishing the same article overwrites
// both files byte for byte, so retries are harmless.
func (w *Writer) Publish(ctx context.Context, article domain.Article) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pageURL := w.articleURL(article)

	if err := w.writeDocument(article, pageURL); err != nil {
		return "", err
	}
	if err := w.writeRecord(article, pageURL); err != nil {
		return "", err
	}

	if w.logger != nil {
		w.logger.Info("article published",
			"category", article.Category,
			"slug", article.Slug,
			"url", pageURL)
	}
	return pageURL, nil
}

func (w *Writer) articleURL(article domain.Article) string {
	base := strings.TrimRight(w.cfg.Site.BaseURL, "/")
	return fmt.Sprintf("%s/articles/%s/%s.html", base, article.Category, article.Slug)
}

func (w *Writer) writeDocument(article domain.Article, pageURL string) error {
	jsonLD, err := jsonLD(article, pageURL, w.cfg.Site.Name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		SiteName:     w.cfg.Site.Name,
		Title:        article.Title,
		MetaTitle:    article.MetaTitle,
		MetaDesc:     article.MetaDescription,
		Keywords:     strings.Join(article.MetaKeywords, ", "),
		Author:       article.Author,
		CanonicalURL: pageURL,
		Published:    article.Published,
		ReadingTime:  article.ReadingTime,
		Subcategory:  article.Subcategory,
		CityTags:     article.CityTags,
		Summary:      article.Summary,
		Content:      article.Content,
		SourceName:   article.SourceName,
		SourceURL:    article.URL,
		JSONLD:       jsonLD,
	})
	if err != nil {
		return fmt.Errorf("render article %s: %w", article.Slug, err)
	}

	dir := w.cfg.ArticlesDir(article.Category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create articles dir: %w", err)
	}
	path := filepath.Join(dir, article.Slug+".html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}

func (w *Writer) writeRecord(article domain.Article, pageURL string) error {
	record := domain.MetadataRecord{
		Title:           article.Title,
		Slug:            article.Slug,
		Category:        article.Category,
		Subcategory:     article.Subcategory,
		CityTags:        article.CityTags,
		MetaTitle:       article.MetaTitle,
		MetaDescription: article.MetaDescription,
		MetaKeywords:    article.MetaKeywords,
		Author:          article.Author,
		Published:       article.Published,
		ReadingTime:     article.ReadingTime,
		Source:          article.SourceName,
		SourceURL:       article.URL,
		HashID:          article.Fingerprint,
		URL:             pageURL,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", article.Fingerprint, err)
	}

	if err := os.MkdirAll(w.cfg.DataDir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(w.cfg.DataDir(), "article_"+article.Fingerprint+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", path, err)
	}
	return nil
}

// jsonLD builds the structured-data block with encoding/json so the output
// is always valid JSON regardless of the article text.
func jsonLD(article domain.Article, pageURL, siteName string) (template.JS, error) {
	payload := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "NewsArticle",
		"headline":         article.Title,
		"description":      article.MetaDescription,
		"datePublished":    article.Published,
		"author":           map[string]any{"@type": "Organization", "name": article.Author},
		"publisher":        map[string]any{"@type": "Organization", "name": siteName},
		"mainEntityOfPage": pageURL,
	}
	if len(article.MetaKeywords) > 0 {
		payload["keywords"] = strings.Join(article.MetaKeywords, ", ")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return template.JS(raw), nil
}

package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finro/internal/ports"
)

const (
	minBodyRunes      = 100 // below this a selector hit is considered noise
	minParagraphRunes = 30
	fallbackParaCap   = 12
)

// contentSelectors is tried in order; the first container with enough text
// wins. Covers the markup of the configured publishers.
var contentSelectors = []string{
	".entry-content",
	".article-content",
	".article-body",
	".post-content",
	"article",
}

// Extractor recovers full-article text from a source page for summaries
// and reading-time estimates.
type Extractor struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.ContentExtractor = (*Extractor)(nil)

func NewExtractor(client *http.Client, userAgent string, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{}
	}
	return &Extractor{client: client, userAgent: userAgent, logger: logger}
}

// Extract fetches the article page and pulls the body text, capped at
// runeCap runes. Returns "" when the page is unreachable or carries no
// recognizable body; the caller falls back to the feed summary.
func (e *Extractor) Extract(ctx context.Context, pageURL string, runeCap int) string {
	resp, err := get(ctx, e.client, e.userAgent, pageURL)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("content fetch failed", "url", pageURL, "error", err)
		}
		return ""
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}
	return extractBody(doc, runeCap)
}

func extractBody(doc *goquery.Document, runeCap int) string {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := joinParagraphs(sel)
		if text == "" {
			text = strings.TrimSpace(sel.Text())
		}
		if len([]rune(text)) >= minBodyRunes {
			return truncateRunes(text, runeCap)
		}
	}

	// No known container: take the longest paragraphs anywhere on the page.
	var parts []string
	doc.Find("main p, article p, body p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := strings.TrimSpace(p.Text())
		if len([]rune(t)) >= minParagraphRunes {
			parts = append(parts, t)
		}
		return len(parts) < fallbackParaCap
	})
	return truncateRunes(strings.Join(parts, " "), runeCap)
}

func joinParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

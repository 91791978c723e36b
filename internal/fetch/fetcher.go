// Package fetch implements the source boundary: RSS/Atom feeds via gofeed
// and listing pages via goquery. Failures never cross this boundary; a
// broken source is logged and contributes zero entries.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"finro/internal/classify"
	"finro/internal/domain"
	"finro/internal/ports"
)

const (
	pageItemCap    = 10  // list items taken from a scraped page
	summaryRuneCap = 500 // entry summaries are bounded plain text
)

// Fetcher pulls raw entries for one category's sources.
type Fetcher struct {
	client    *http.Client
	userAgent string
	feedCap   int // entries considered per feed, before pre-filtering
	logger    *slog.Logger
}

var _ ports.SourceFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client with the configured timeout. feedCap
// bounds how many items are read from each feed.
func NewFetcher(client *http.Client, userAgent string, feedCap int, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if feedCap <= 0 {
		feedCap = 15
	}
	return &Fetcher{client: client, userAgent: userAgent, feedCap: feedCap, logger: logger}
}

// Fetch dispatches on the source mode. On any failure it logs and returns
// the entries collected so far (possibly none).
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) []domain.RawEntry {
	var (
		entries []domain.RawEntry
		err     error
	)
	switch src.Mode {
	case domain.SourcePage:
		entries, err = f.fetchPage(ctx, src)
	default:
		entries, err = f.fetchFeed(ctx, src)
	}
	if err != nil {
		f.warn("source fetch failed", "source", src.ID, "error", err)
		return entries
	}
	f.debug("source fetched", "source", src.ID, "entries", len(entries))
	return entries
}

func (f *Fetcher) fetchFeed(ctx context.Context, src domain.Source) ([]domain.RawEntry, error) {
	resp, err := f.get(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var entries []domain.RawEntry
	for i, item := range feed.Items {
		if i >= f.feedCap {
			break
		}

		title := strings.TrimSpace(item.Title)
		summary := truncateRunes(stripHTML(item.Description), summaryRuneCap)

		if len(src.FilterKeywords) > 0 &&
			!classify.ContainsAny(title+" "+summary, src.FilterKeywords) {
			continue
		}

		published := item.Published
		if published == "" {
			published = item.Updated
		}

		entries = append(entries, domain.RawEntry{
			Title:      title,
			URL:        item.Link,
			Published:  published,
			Summary:    summary,
			SourceID:   src.ID,
			SourceName: src.Name,
		})
	}
	return entries, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, src domain.Source) ([]domain.RawEntry, error) {
	resp, err := f.get(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %s: %w", src.URL, err)
	}

	var entries []domain.RawEntry
	doc.Find(src.Selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= pageItemCap {
			return false
		}

		link := sel.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		if ref, err := url.Parse(href); err == nil {
			href = base.ResolveReference(ref).String()
		}

		summary := ""
		if p := sel.Find("p").First(); p.Length() > 0 {
			summary = truncateRunes(strings.TrimSpace(p.Text()), summaryRuneCap)
		}

		entries = append(entries, domain.RawEntry{
			Title:      strings.TrimSpace(link.Text()),
			URL:        href,
			Published:  time.Now().UTC().Format(time.RFC3339),
			Summary:    summary,
			SourceID:   src.ID,
			SourceName: src.Name,
		})
		return true
	})
	return entries, nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (*http.Response, error) {
	return get(ctx, f.client, f.userAgent, pageURL)
}

func get(ctx context.Context, client *http.Client, userAgent, pageURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp, nil
}

// stripHTML flattens feed summaries that carry markup into plain text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

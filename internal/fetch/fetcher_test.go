package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finro/internal/domain"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test</title>%s</channel></rss>`

func feedItem(title, link, desc string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description>%s</description><pubDate>Mon, 02 Mar 2026 08:00:00 GMT</pubDate></item>`, title, link, desc)
}

func TestFetchFeedParsesEntries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "TestBot/1.0" {
			t.Errorf("user agent = %q", got)
		}
		fmt.Fprintf(w, feedTemplate,
			feedItem("Dobânzile scad", "https://pub.example/a", "&lt;p&gt;Creditele devin mai ieftine.&lt;/p&gt;"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "TestBot/1.0", 15, nil)
	entries := f.Fetch(context.Background(), domain.Source{ID: "t", Name: "Test", Mode: domain.SourceFeed, URL: srv.URL})

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Title != "Dobânzile scad" || e.URL != "https://pub.example/a" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Summary != "Creditele devin mai ieftine." {
		t.Fatalf("summary markup not stripped: %q", e.Summary)
	}
	if e.Published == "" {
		t.Fatal("published date lost")
	}
	if e.SourceID != "t" || e.SourceName != "Test" {
		t.Fatalf("source attribution missing: %+v", e)
	}
}

func TestFetchFeedHonorsEntryCap(t *testing.T) {
	t.Parallel()

	var items strings.Builder
	for i := 0; i < 30; i++ {
		items.WriteString(feedItem(fmt.Sprintf("Articol %d", i), fmt.Sprintf("https://pub.example/%d", i), "text"))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, items.String())
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "TestBot/1.0", 10, nil)
	entries := f.Fetch(context.Background(), domain.Source{ID: "t", Mode: domain.SourceFeed, URL: srv.URL})
	if len(entries) != 10 {
		t.Fatalf("cap not applied: got %d entries", len(entries))
	}
}

func TestFetchFeedAppliesFilterKeywords(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate,
			feedItem("Meci de fotbal", "https://pub.example/sport", "rezultate")+
				feedItem("Asigurarea RCA se scumpește", "https://pub.example/rca", "tarife noi"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "TestBot/1.0", 15, nil)
	entries := f.Fetch(context.Background(), domain.Source{
		ID: "t", Mode: domain.SourceFeed, URL: srv.URL,
		FilterKeywords: []string{"asigurare", "rca"},
	})

	if len(entries) != 1 {
		t.Fatalf("expected only the matching entry, got %d", len(entries))
	}
	if entries[0].URL != "https://pub.example/rca" {
		t.Fatalf("wrong entry survived the filter: %+v", entries[0])
	}
}

func TestFetchFailingSourceYieldsNothing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "TestBot/1.0", 15, nil)
	if entries := f.Fetch(context.Background(), domain.Source{ID: "t", Mode: domain.SourceFeed, URL: srv.URL}); len(entries) != 0 {
		t.Fatalf("broken source must yield no entries, got %d", len(entries))
	}
}

func TestFetchPageScrapesListing(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="news-list">
		<div class="news-item"><a href="/stiri/prima">Prima știre</a><p>Rezumatul primei știri.</p></div>
		<div class="news-item"><a href="https://alt.example/abs">A doua</a></div>
		<div class="news-item"><span>fără link</span></div>
	</div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "TestBot/1.0", 15, nil)
	entries := f.Fetch(context.Background(), domain.Source{
		ID: "p", Name: "Pagina", Mode: domain.SourcePage, URL: srv.URL + "/stiri",
		Selector: ".news-list .news-item",
	})

	if len(entries) != 2 {
		t.Fatalf("expected 2 linked items, got %d", len(entries))
	}
	if entries[0].Title != "Prima știre" {
		t.Fatalf("title = %q", entries[0].Title)
	}
	if entries[0].URL != srv.URL+"/stiri/prima" {
		t.Fatalf("relative href not resolved: %q", entries[0].URL)
	}
	if entries[0].Summary != "Rezumatul primei știri." {
		t.Fatalf("summary = %q", entries[0].Summary)
	}
	if entries[1].URL != "https://alt.example/abs" {
		t.Fatalf("absolute href mangled: %q", entries[1].URL)
	}
	if entries[0].Published == "" {
		t.Fatal("page entries must carry a synthetic published date")
	}
}

func TestExtractPrefersKnownContainers(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("Un paragraf suficient de lung despre dobânzi și credite. ", 10)
	page := fmt.Sprintf(`<html><body>
		<div class="sidebar"><p>reclamă</p></div>
		<div class="article-content"><p>%s</p><p>%s</p></div>
	</body></html>`, body, body)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	e := NewExtractor(srv.Client(), "TestBot/1.0", nil)
	got := e.Extract(context.Background(), srv.URL, 2000)

	if got == "" {
		t.Fatal("no content extracted")
	}
	if strings.Contains(got, "reclamă") {
		t.Fatal("sidebar text leaked into the body")
	}
	if n := len([]rune(got)); n > 2000 {
		t.Fatalf("content over cap: %d runes", n)
	}
}

func TestExtractFallsBackToParagraphs(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<p>scurt</p>
		<p>Un paragraf îndeajuns de lung încât să conteze pentru extragere.</p>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	e := NewExtractor(srv.Client(), "TestBot/1.0", nil)
	got := e.Extract(context.Background(), srv.URL, 2000)

	if !strings.Contains(got, "îndeajuns de lung") {
		t.Fatalf("fallback paragraph missing: %q", got)
	}
	if strings.Contains(got, "scurt") {
		t.Fatalf("short paragraph should be skipped: %q", got)
	}
}

func TestExtractUnreachablePageYieldsEmpty(t *testing.T) {
	t.Parallel()

	e := NewExtractor(&http.Client{}, "TestBot/1.0", nil)
	if got := e.Extract(context.Background(), "http://127.0.0.1:1/none", 2000); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}

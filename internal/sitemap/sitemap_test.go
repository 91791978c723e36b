package sitemap

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finro/internal/config"
	"finro/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Site:  config.SiteConfig{BaseURL: "https://finro.ro"},
		Paths: config.PathsConfig{WebsiteDir: t.TempDir()},
	}
}

func writeIndex(t *testing.T, cfg config.Config, doc domain.IndexDocument) {
	t.Helper()
	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.DataDir(), "index_"+doc.Category+".json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateIncludesStaticAndArticlePages(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeIndex(t, cfg, domain.IndexDocument{
		Category: "finante",
		Articles: []domain.MetadataRecord{{
			URL:       "https://finro.ro/articles/finante/dobanzi.html",
			Published: "2026-03-02T08:00:00Z",
		}},
	})

	cats := []domain.Category{{Key: "finante"}, {Key: "tech"}}
	if err := NewGenerator(cfg, nil).Generate(context.Background(), cats); err != nil {
		t.Fatalf("generate: %v", err)
	}

	raw, err := os.ReadFile(cfg.SitemapPath())
	if err != nil {
		t.Fatalf("sitemap missing: %v", err)
	}

	var set urlSet
	if err := xml.Unmarshal(raw, &set); err != nil {
		t.Fatalf("sitemap not valid xml: %v", err)
	}

	locs := make(map[string]urlEntry, len(set.URLs))
	for _, u := range set.URLs {
		locs[u.Loc] = u
	}

	if _, ok := locs["https://finro.ro/"]; !ok {
		t.Fatal("site root missing")
	}
	if _, ok := locs["https://finro.ro/finante.html"]; !ok {
		t.Fatal("category page missing")
	}
	// tech has no index yet but still gets its landing page.
	if _, ok := locs["https://finro.ro/tech.html"]; !ok {
		t.Fatal("indexless category page missing")
	}

	art, ok := locs["https://finro.ro/articles/finante/dobanzi.html"]
	if !ok {
		t.Fatal("article url missing")
	}
	if art.LastMod != "2026-03-02" {
		t.Fatalf("lastmod = %q", art.LastMod)
	}

	if !strings.HasPrefix(string(raw), xml.Header) {
		t.Fatal("xml declaration missing")
	}
}

func TestLastModToleratesSourceDateFormats(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2026-03-02T08:00:00Z":            "2026-03-02",
		"Mon, 02 Mar 2026 08:00:00 GMT":   "2026-03-02",
		"Mon, 02 Mar 2026 10:00:00 +0200": "2026-03-02",
		"2026-03-02":                      "2026-03-02",
		"nu e o dată":                     "",
	}
	for in, want := range cases {
		if got := lastMod(in); got != want {
			t.Errorf("lastMod(%q) = %q, want %q", in, got, want)
		}
	}
}

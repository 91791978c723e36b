package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"finro/internal/config"
	"finro/internal/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{Paths: config.PathsConfig{WebsiteDir: t.TempDir()}}
}

func testCategory() domain.Category {
	return domain.Category{
		Key: "finante",
		Subcategories: domain.Vocabulary{
			{Label: "credite", Keywords: []string{"credit"}},
			{Label: "banci", Keywords: []string{"banca"}},
		},
	}
}

func writeRecord(t *testing.T, cfg config.Config, rec domain.MetadataRecord, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfg.DataDir(), "article_"+rec.HashID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func readIndex(t *testing.T, cfg config.Config, name string) domain.IndexDocument {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(cfg.DataDir(), name))
	if err != nil {
		t.Fatalf("index %s missing: %v", name, err)
	}
	var doc domain.IndexDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("index %s not valid json: %v", name, err)
	}
	return doc
}

func TestRebuildOrdersMostRecentFirst(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	base := time.Now().Add(-time.Hour)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "old111111111", Slug: "vechi", Category: "finante", Subcategory: "credite"}, base)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "new222222222", Slug: "nou", Category: "finante", Subcategory: "banci"}, base.Add(30*time.Minute))

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	doc := readIndex(t, cfg, "index_finante.json")
	if doc.Total != 2 || len(doc.Articles) != 2 {
		t.Fatalf("unexpected index: total=%d articles=%d", doc.Total, len(doc.Articles))
	}
	if doc.Articles[0].Slug != "nou" || doc.Articles[1].Slug != "vechi" {
		t.Fatalf("wrong order: %s, %s", doc.Articles[0].Slug, doc.Articles[1].Slug)
	}
}

func TestRebuildIgnoresOtherCategories(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	now := time.Now()
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "fin111111111", Slug: "al-nostru", Category: "finante", Subcategory: "credite"}, now)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "tech11111111", Slug: "strain", Category: "tech", Subcategory: "ai"}, now)

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatal(err)
	}

	doc := readIndex(t, cfg, "index_finante.json")
	if doc.Total != 1 || doc.Articles[0].Slug != "al-nostru" {
		t.Fatalf("foreign record leaked in: %+v", doc)
	}
}

func TestRebuildWritesSubcategoryIndexes(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	now := time.Now()
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "aaa111111111", Slug: "despre-credite", Category: "finante", Subcategory: "credite"}, now)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "bbb222222222", Slug: "altceva", Category: "finante", Subcategory: "general"}, now)

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatal(err)
	}

	credite := readIndex(t, cfg, "index_finante_credite.json")
	if credite.Subcategory != "credite" || credite.Total != 1 || credite.Articles[0].Slug != "despre-credite" {
		t.Fatalf("credite index wrong: %+v", credite)
	}

	general := readIndex(t, cfg, "index_finante_general.json")
	if general.Total != 1 || general.Articles[0].Slug != "altceva" {
		t.Fatalf("general index wrong: %+v", general)
	}

	// Declared but empty subcategories still get a well-formed index.
	banci := readIndex(t, cfg, "index_finante_banci.json")
	if banci.Total != 0 || banci.Articles == nil || len(banci.Articles) != 0 {
		t.Fatalf("empty subcategory index wrong: %+v", banci)
	}
}

func TestRebuildWritesCityIndexes(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cat := domain.Category{
		Key:           "investitii",
		Subcategories: domain.Vocabulary{{Label: "imobiliare", Keywords: []string{"imobiliar"}}},
		Cities:        domain.Vocabulary{{Label: "cluj", Keywords: []string{"cluj"}}, {Label: "brasov", Keywords: []string{"brașov"}}},
	}
	now := time.Now()
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "ccc111111111", Slug: "in-cluj", Category: "investitii", Subcategory: "imobiliare", CityTags: []string{"cluj"}}, now)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "ddd222222222", Slug: "fara-oras", Category: "investitii", Subcategory: "imobiliare"}, now)

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), cat); err != nil {
		t.Fatal(err)
	}

	cluj := readIndex(t, cfg, "index_city_cluj.json")
	if cluj.City != "cluj" || cluj.Total != 1 || cluj.Articles[0].Slug != "in-cluj" {
		t.Fatalf("cluj index wrong: %+v", cluj)
	}
	brasov := readIndex(t, cfg, "index_city_brasov.json")
	if brasov.Total != 0 {
		t.Fatalf("brasov index should be empty: %+v", brasov)
	}
}

func TestRebuildAppliesCategoryCap(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	base := time.Now().Add(-2 * time.Hour)
	for i := 0; i < 60; i++ {
		writeRecord(t, cfg, domain.MetadataRecord{
			HashID:      fmt.Sprintf("cap%09d", i),
			Slug:        fmt.Sprintf("articol-%02d", i),
			Category:    "finante",
			Subcategory: "general",
		}, base.Add(time.Duration(i)*time.Minute))
	}

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatal(err)
	}

	doc := readIndex(t, cfg, "index_finante.json")
	if doc.Total != 60 {
		t.Fatalf("total = %d, want 60", doc.Total)
	}
	if len(doc.Articles) != 50 {
		t.Fatalf("articles = %d, want cap of 50", len(doc.Articles))
	}
	if doc.Articles[0].Slug != "articol-59" {
		t.Fatalf("newest record must lead: %s", doc.Articles[0].Slug)
	}

	general := readIndex(t, cfg, "index_finante_general.json")
	if len(general.Articles) != 30 {
		t.Fatalf("subcategory cap = %d, want 30", len(general.Articles))
	}
}

func TestRebuildTwiceFromSameRecordsIsIdentical(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cat := domain.Category{
		Key:           "investitii",
		Subcategories: domain.Vocabulary{{Label: "imobiliare", Keywords: []string{"imobiliar"}}},
		Cities:        domain.Vocabulary{{Label: "cluj", Keywords: []string{"cluj"}}},
	}
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		writeRecord(t, cfg, domain.MetadataRecord{
			HashID:      fmt.Sprintf("idem%08d", i),
			Slug:        fmt.Sprintf("articol-%d", i),
			Category:    "investitii",
			Subcategory: "imobiliare",
			CityTags:    []string{"cluj"},
		}, base.Add(time.Duration(i)*time.Minute))
	}

	b := NewBuilder(cfg, nil)
	if err := b.Rebuild(context.Background(), cat); err != nil {
		t.Fatal(err)
	}

	names := []string{"index_investitii.json", "index_investitii_imobiliare.json", "index_city_cluj.json"}
	first := make(map[string]domain.IndexDocument, len(names))
	for _, name := range names {
		first[name] = readIndex(t, cfg, name)
	}

	if err := b.Rebuild(context.Background(), cat); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		again := readIndex(t, cfg, name)
		if again.Total != first[name].Total {
			t.Errorf("%s: total changed across rebuilds: %d vs %d", name, first[name].Total, again.Total)
		}
		if !reflect.DeepEqual(again.Articles, first[name].Articles) {
			t.Errorf("%s: article list changed across rebuilds", name)
		}
	}
}

func TestRebuildSkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeRecord(t, cfg, domain.MetadataRecord{HashID: "ok1111111111", Slug: "bun", Category: "finante", Subcategory: "general"}, time.Now())
	if err := os.WriteFile(filepath.Join(cfg.DataDir(), "article_broken.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatalf("rebuild must tolerate a bad record: %v", err)
	}
	if doc := readIndex(t, cfg, "index_finante.json"); doc.Total != 1 {
		t.Fatalf("total = %d, want 1", doc.Total)
	}
}

func TestRebuildEmptyDataDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := NewBuilder(cfg, nil).Rebuild(context.Background(), testCategory()); err != nil {
		t.Fatalf("rebuild with no data dir: %v", err)
	}
	doc := readIndex(t, cfg, "index_finante.json")
	if doc.Total != 0 || len(doc.Articles) != 0 {
		t.Fatalf("expected empty index, got %+v", doc)
	}
}

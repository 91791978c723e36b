// Package seo derives publication metadata from a classified entry. Every
// function here is pure and total: no I/O, no failure paths.
package seo

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mattn/go-runewidth"

	"finro/internal/domain"
)

const (
	metaTitleWidth = 60  // display units, marker included
	metaDescWidth  = 155 // display units, marker included
	ellipsis       = "..."

	wordsPerMinute = 200
	titleTermCap   = 5
	cityTermCap    = 3
	slugMaxLen     = 80
	fingerprintLen = 12
)

// Options carries the site-wide constants that frame the metadata.
type Options struct {
	SiteName string // meta-title suffix, e.g. "FinRo.ro"
	Author   string
}

// Enrich builds the publishable Article for an accepted entry. Content may
// be empty (dry runs, scrape failures); enrichment still succeeds.
func Enrich(entry domain.RawEntry, cls domain.Classification, cat domain.Category, content string, opts Options) domain.Article {
	return domain.Article{
		Title:       entry.Title,
		Slug:        Slug(entry.Title),
		URL:         entry.URL,
		SourceID:    entry.SourceID,
		SourceName:  entry.SourceName,
		Published:   entry.Published,
		Summary:     entry.Summary,
		Content:     content,
		Category:    cat.Key,
		Subcategory: cls.Subcategory,
		CityTags:    cls.CityTags,

		MetaTitle:       MetaTitle(entry.Title, opts.SiteName),
		MetaDescription: MetaDescription(entry.Title, entry.Summary),
		MetaKeywords:    Keywords(entry.Title, cls, cat),
		ReadingTime:     ReadingTime(entry.Summary, content, cat.ReadingTimeFloor),
		Author:          opts.Author,
		Fingerprint:     Fingerprint(entry.URL),
	}
}

// MetaTitle truncates a title to 60 display units (57 content units plus a
// marker when it overflows) and appends the site suffix.
func MetaTitle(title, siteName string) string {
	return runewidth.Truncate(title, metaTitleWidth, ellipsis) + " | " + siteName
}

// MetaDescription applies the 155-unit truncation to the summary, falling
// back to the title when the summary is empty.
func MetaDescription(title, summary string) string {
	desc := summary
	if desc == "" {
		desc = title
	}
	return runewidth.Truncate(desc, metaDescWidth, ellipsis)
}

// Keywords unions the category base terms, the leading subcategory terms,
// title words wider than 3 display units, and the leading city tags.
// Deduplicated, first occurrence kept.
func Keywords(title string, cls domain.Classification, cat domain.Category) []string {
	var out []string
	seen := map[string]bool{}
	add := func(terms []string, limit int) {
		for i, term := range terms {
			if limit > 0 && i >= limit {
				break
			}
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}

	add(cat.BaseKeywords, 0)
	add(cat.Subcategories.Keywords(cls.Subcategory), cat.MetaSubcatTerms)

	var titleTerms []string
	for _, w := range strings.Fields(title) {
		if runewidth.StringWidth(w) > 3 {
			titleTerms = append(titleTerms, w)
		}
	}
	add(titleTerms, titleTermCap)
	add(cls.CityTags, cityTermCap)

	return out
}

// ReadingTime estimates minutes from the whitespace word count of summary
// plus body, floor-bounded per category.
func ReadingTime(summary, content string, floor int) int {
	words := len(strings.Fields(summary + " " + content))
	if minutes := words / wordsPerMinute; minutes > floor {
		return minutes
	}
	return floor
}

// Fingerprint hashes a canonical URL into the short stable key used for
// both deduplication and record addressing. Same URL, same fingerprint,
// across runs and restarts; collisions at 12 hex chars are accepted as
// negligible.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after canonical decomposition, so
// "Brașov" and "dobândă" fold to "brasov" and "dobanda".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug derives the URL-safe, lowercase, diacritic-folded file name for a
// title. Stable: the same title always yields the same slug, which keeps
// published URLs deterministic across reruns.
func Slug(title string) string {
	folded, _, err := transform.String(foldTransformer, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastDash := true // suppress leading dashes
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")

	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
		// Avoid cutting mid-word when a boundary exists.
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
		s = strings.Trim(s, "-")
	}
	return s
}

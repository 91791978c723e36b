// Package summarize produces short extractive summaries: the highest
// scoring sentences by word frequency, emitted in document order.
package summarize

import (
	"sort"
	"strings"
	"unicode"

	"finro/internal/ports"
)

const passthroughRunes = 100 // text this short is already a summary

// stopwords are ignored when scoring. Romanian function words plus a few
// English ones that show up in tech sources.
var stopwords = map[string]struct{}{
	"și": {}, "sau": {}, "dar": {}, "în": {}, "la": {}, "de": {}, "din": {},
	"pe": {}, "cu": {}, "un": {}, "o": {}, "una": {}, "unei": {}, "unui": {},
	"cel": {}, "cea": {}, "ce": {}, "care": {}, "este": {}, "sunt": {},
	"a": {}, "al": {}, "ale": {}, "ai": {}, "se": {}, "să": {}, "nu": {},
	"mai": {}, "pentru": {}, "prin": {}, "dacă": {}, "când": {}, "după": {},
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "for": {}, "is": {},
}

type Extractive struct{}

var _ ports.Summarizer = Extractive{}

func New() Extractive { return Extractive{} }

// Summarize returns up to maxSentences sentences picked by frequency
// score, in their original order. Text under the passthrough threshold is
// returned unchanged.
func (Extractive) Summarize(text string, maxSentences int) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) <= passthroughRunes || maxSentences <= 0 {
		return text
	}

	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}

	freq := wordFrequencies(text)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		var total float64
		words := tokenize(s)
		for _, w := range words {
			total += freq[w]
		}
		if len(words) > 0 {
			total /= float64(len(words))
		}
		ranked[i] = scored{idx: i, score: total}
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	picked := ranked[:maxSentences]
	sort.Slice(picked, func(a, b int) bool { return picked[a].idx < picked[b].idx })

	parts := make([]string, 0, len(picked))
	for _, p := range picked {
		parts = append(parts, sentences[p.idx])
	}
	return strings.Join(parts, " ")
}

// splitSentences cuts on terminal punctuation. Good enough for news prose;
// abbreviation handling is deliberately out.
func splitSentences(text string) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return out
}

func wordFrequencies(text string) map[string]float64 {
	freq := map[string]float64{}
	for _, w := range tokenize(text) {
		freq[w]++
	}
	var max float64
	for _, f := range freq {
		if f > max {
			max = f
		}
	}
	if max > 0 {
		for w := range freq {
			freq[w] /= max
		}
	}
	return freq
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopwords[f]; stop || len([]rune(f)) < 3 {
			continue
		}
		out = append(out, f)
	}
	return out
}

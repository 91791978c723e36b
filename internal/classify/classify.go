// Package classify scores free text against curated keyword tables.
//
// Matching is case-insensitive substring containment, without stemming or
// word boundaries. The vocabularies are small and stable, so an Aho-Corasick
// automaton over all keywords gives O(text+keywords) scoring while keeping
// the results fully explainable.
package classify

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"finro/internal/domain"
)

// Classifier holds one automaton per vocabulary instance. Build it once per
// category; Classify and Tags are pure and deterministic after that.
type Classifier struct {
	vocab    domain.Vocabulary
	matcher  *ahocorasick.Matcher
	keywords []string
	owners   [][]int // keyword index -> vocabulary entry indexes
}

// New compiles a vocabulary into a classifier. A nil or empty vocabulary is
// allowed and classifies everything as the catch-all label.
func New(vocab domain.Vocabulary) *Classifier {
	c := &Classifier{vocab: vocab}

	index := map[string]int{}
	seen := map[[2]int]bool{}
	for i, entry := range vocab {
		for _, kw := range entry.Keywords {
			lower := strings.ToLower(kw)
			idx, ok := index[lower]
			if !ok {
				idx = len(c.keywords)
				index[lower] = idx
				c.keywords = append(c.keywords, lower)
				c.owners = append(c.owners, nil)
			}
			// A keyword listed twice under one label still counts once.
			if seen[[2]int{i, idx}] {
				continue
			}
			seen[[2]int{i, idx}] = true
			c.owners[idx] = append(c.owners[idx], i)
		}
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// scores counts, per vocabulary entry, how many of its keywords occur in
// the text. Each keyword contributes at most 1 regardless of occurrences.
func (c *Classifier) scores(text string) []int {
	counts := make([]int, len(c.vocab))
	if c.matcher == nil {
		return counts
	}
	for _, hit := range c.matcher.Match([]byte(strings.ToLower(text))) {
		for _, owner := range c.owners[hit] {
			counts[owner]++
		}
	}
	return counts
}

// Classify returns the single best-scoring label. Ties go to the label
// declared first in the vocabulary; a best score of zero yields the
// catch-all label. Total: every input gets exactly one label.
func (c *Classifier) Classify(text string) string {
	counts := c.scores(text)

	best, bestScore := -1, 0
	for i, score := range counts {
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return domain.GeneralLabel
	}
	return c.vocab[best].Label
}

// Tags returns every label whose score is positive, in vocabulary order.
// Unlike Classify there is no single-winner constraint: an article may
// legitimately concern several cities at once.
func (c *Classifier) Tags(text string) []string {
	counts := c.scores(text)

	var tags []string
	for i, score := range counts {
		if score > 0 {
			tags = append(tags, c.vocab[i].Label)
		}
	}
	return tags
}

// ContainsAny reports whether text contains at least one of the keywords,
// case-insensitively. Used for per-source inclusion pre-filters.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

package domain

// VocabularyEntry associates one label with its keyword list.
type VocabularyEntry struct {
	Label    string
	Keywords []string
}

// Vocabulary is an ordered keyword table. Order matters: when two labels
// score equally, the earlier entry wins.
type Vocabulary []VocabularyEntry

// Keywords returns the keyword list for a label, or nil if absent.
func (v Vocabulary) Keywords(label string) []string {
	for _, e := range v {
		if e.Label == label {
			return e.Keywords
		}
	}
	return nil
}

// Labels returns all labels in declaration order.
func (v Vocabulary) Labels() []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		out = append(out, e.Label)
	}
	return out
}

// GeneralLabel is assigned when no subcategory keyword matches.
const GeneralLabel = "general"

// Category is the per-domain parameter object that collapses the four
// original agents into one pipeline.
type Category struct {
	Key   string // directory / file-name key, e.g. "finante"
	Label string // display label, e.g. "Finanțe Personale"
	Icon  string // emoji shown in the homepage section header

	Sources []Source

	Subcategories Vocabulary
	// Cities is the optional geographic facet vocabulary; nil for
	// categories without city tagging.
	Cities Vocabulary

	// SubcategoryLabels maps a subcategory key to its display form.
	SubcategoryLabels map[string]string

	BaseKeywords []string // fixed SEO terms added to every article

	// MetaSubcatTerms caps how many subcategory keywords join the SEO
	// keyword set.
	MetaSubcatTerms int

	ReadingTimeFloor int // minimum reading-time minutes
	FeedEntryCap     int // entries taken per feed fetch
	ContentRuneCap   int // extracted article text cap
	DefaultMaxItems  int // default per-run new-item cap
}

// SubcategoryLabel resolves the display label for a subcategory key,
// falling back to the category label.
func (c Category) SubcategoryLabel(key string) string {
	if l, ok := c.SubcategoryLabels[key]; ok {
		return l
	}
	return c.Label
}

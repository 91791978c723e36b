package domain

// SourceMode selects how a source is fetched.
type SourceMode string

const (
	SourceFeed SourceMode = "feed"
	SourcePage SourceMode = "page"
)

// Source describes a single upstream provider. Sources are static data,
// declared once per category at process start.
type Source struct {
	ID       string
	Name     string
	Mode     SourceMode
	URL      string
	Selector string // page mode only: CSS selector for list items

	// FilterKeywords, when non-empty, keep an entry only if its title or
	// summary contains at least one of them (case-insensitive).
	FilterKeywords []string
}

// RawEntry is one normalized item produced by a source fetcher. It lives
// only for the duration of a run.
type RawEntry struct {
	Title      string
	URL        string
	Published  string // as provided by the source; empty when unknown
	Summary    string
	SourceID   string
	SourceName string
}

// Classification assigns an entry exactly one subcategory and zero or more
// city tags.
type Classification struct {
	Subcategory string
	CityTags    []string
}

// Article is the enriched, publishable item built from a RawEntry and its
// classification. Immutable once constructed.
type Article struct {
	Title       string
	Slug        string
	URL         string
	SourceID    string
	SourceName  string
	Published   string
	Summary     string
	Content     string
	Category    string
	Subcategory string
	CityTags    []string

	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	ReadingTime     int
	Author          string
	Fingerprint     string
}

// MetadataRecord is the persisted projection of an Article, one JSON file
// per accepted item keyed by fingerprint.
type MetadataRecord struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	CityTags        []string `json:"city_tags,omitempty"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords"`
	Author          string   `json:"author"`
	Published       string   `json:"published"`
	ReadingTime     int      `json:"reading_time"`
	Source          string   `json:"source"`
	SourceURL       string   `json:"source_url"`
	HashID          string   `json:"hash_id"`
	URL             string   `json:"url"`
}

// IndexDocument is a rebuilt category or facet view over MetadataRecords,
// most recent first, truncated to a fixed cap.
type IndexDocument struct {
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory,omitempty"`
	City        string           `json:"city,omitempty"`
	Total       int              `json:"total"`
	Updated     string           `json:"updated"`
	Articles    []MetadataRecord `json:"articles"`
}

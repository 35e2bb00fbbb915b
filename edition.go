package epaper

import (
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Edition is one newspaper section for an issue, backed by one document.
type Edition struct {
	ID           string    `json:"id,omitempty"`
	NewspaperID  string    `json:"newspaperId,omitempty"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Position     int       `json:"position"`
	LocalPath    string    `json:"localPath,omitempty"`
	DownloadedAt time.Time `json:"downloadedAt,omitzero"`
}

// IsDownloaded reports whether the edition document has been saved locally.
func (e *Edition) IsDownloaded() bool {
	return e.LocalPath != "" && !e.DownloadedAt.IsZero()
}

// EditionMapping is an insertion-ordered mapping from edition title to
// document URL. Titles are unique: the first URL added for a title wins.
//
// The zero value is not usable; create mappings with NewEditionMapping.
// Len and Titles are safe to call on a nil mapping.
type EditionMapping struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewEditionMapping returns an empty mapping.
func NewEditionMapping() *EditionMapping {
	return &EditionMapping{
		entries: orderedmap.New[string, string](),
	}
}

// Add inserts title with url. Surrounding whitespace is trimmed from the
// title. Add returns false, leaving the mapping unchanged, when the title
// or url is blank or the title is already present.
func (m *EditionMapping) Add(title, url string) bool {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(url) == "" {
		return false
	}
	if _, ok := m.entries.Get(title); ok {
		return false
	}
	m.entries.Set(title, url)
	return true
}

// Get returns the URL stored for title.
func (m *EditionMapping) Get(title string) (string, bool) {
	if m == nil {
		return "", false
	}
	return m.entries.Get(title)
}

// Len returns the number of editions.
func (m *EditionMapping) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}

// Titles returns the titles in insertion order.
func (m *EditionMapping) Titles() []string {
	if m == nil {
		return nil
	}
	titles := make([]string, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		titles = append(titles, pair.Key)
	}
	return titles
}

// Editions returns the mapping as editions in insertion order, with
// Position set to the index of each entry.
func (m *EditionMapping) Editions() []*Edition {
	if m == nil {
		return nil
	}
	editions := make([]*Edition, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		editions = append(editions, &Edition{
			Title:    pair.Key,
			URL:      pair.Value,
			Position: len(editions),
		})
	}
	return editions
}

// Clone returns an independent copy of the mapping.
func (m *EditionMapping) Clone() *EditionMapping {
	c := NewEditionMapping()
	if m == nil {
		return c
	}
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		c.entries.Set(pair.Key, pair.Value)
	}
	return c
}

// MarshalJSON encodes the mapping as a JSON object preserving insertion order.
func (m *EditionMapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return m.entries.MarshalJSON()
}

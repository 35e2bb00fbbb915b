package sqlite

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/epaper"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// parseOptionalRFC3339 is like parseRFC3339 but maps "" to the zero time.
func parseOptionalRFC3339(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseRFC3339(value, fieldName)
}

// formatOptionalRFC3339 formats t, mapping the zero time to "".
func formatOptionalRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// hashEditions computes the xxHash of the mapping's ordered title and URL
// pairs and returns it as a hex string.
func hashEditions(m *epaper.EditionMapping) string {
	d := xxhash.New()
	for _, e := range m.Editions() {
		_, _ = d.WriteString(e.Title)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(e.URL)
		_, _ = d.WriteString("\x00")
	}
	return hex.EncodeToString(d.Sum(nil))
}

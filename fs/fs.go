// Package fs lays out downloaded editions on the local file system.
//
// Documents are stored as root/<yyyy-mm-dd>/<newspaper>/<title>.pdf, one
// directory per issue date and newspaper, next to an editions.md manifest.
package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/epaper"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of the per-issue directory name.
const DateLayout = "2006-01-02"

// maxFilenameBytes keeps names within common file system limits once the
// extension is added.
const maxFilenameBytes = 200

// SanitizeFilename replaces characters that are invalid in file names on
// common platforms with '_' and trims surrounding spaces and dots.
// An empty result becomes "edition".
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r), unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	s := strings.Trim(b.String(), " .")
	for len(s) > maxFilenameBytes {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	s = strings.TrimRight(s, " .")

	if s == "" {
		return "edition"
	}
	return s
}

// EditionPath returns the path of the document for title in the issue of
// newspaper published on date.
func EditionPath(root string, date time.Time, newspaper, title string) string {
	return filepath.Join(IssueDir(root, date, newspaper), SanitizeFilename(title)+".pdf")
}

// IssueDir returns the directory holding one issue of newspaper.
func IssueDir(root string, date time.Time, newspaper string) string {
	return filepath.Join(root, date.Format(DateLayout), SanitizeFilename(newspaper))
}

// manifestHeader is the YAML frontmatter of an issue manifest.
type manifestHeader struct {
	Newspaper string `yaml:"newspaper"`
	Source    string `yaml:"source"`
	Date      string `yaml:"date"`
}

// FormatManifest formats the editions of an issue as markdown with YAML
// frontmatter.
func FormatManifest(newspaper *epaper.Newspaper, date time.Time, editions []*epaper.Edition) (string, error) {
	header, err := yaml.Marshal(manifestHeader{
		Newspaper: newspaper.Name,
		Source:    newspaper.URL,
		Date:      date.Format(DateLayout),
	})
	if err != nil {
		return "", epaper.Wrapf(err, epaper.EINTERNAL, "encode manifest header for %s", newspaper.Name)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	for _, e := range editions {
		b.WriteString("- [")
		b.WriteString(e.Title)
		b.WriteString("](")
		b.WriteString(e.URL)
		b.WriteString(")")
		if e.LocalPath != "" {
			b.WriteString(" → ")
			b.WriteString(filepath.Base(e.LocalPath))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// WriteManifest writes the manifest of an issue to editions.md in its
// issue directory and returns the file path.
func WriteManifest(root string, newspaper *epaper.Newspaper, date time.Time, editions []*epaper.Edition) (string, error) {
	dir := IssueDir(root, date, newspaper.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "editions.md")
	content, err := FormatManifest(newspaper, date, editions)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// Package goquery implements CSS-selector based edition extraction
// strategies and HTML directive parsing using github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/epaper"
)

// parse returns the goquery document for html.
func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, epaper.Errorf(epaper.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// parsePage checks ctx and parses the page content.
func parsePage(ctx context.Context, page *epaper.Page) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parse(page.Content())
}

// addAnchor adds an entry keyed by the anchor's text pointing at ref
// resolved against the page base. Non-HTTP references are skipped.
func addAnchor(m *epaper.EditionMapping, page *epaper.Page, sel *goquery.Selection, ref string) {
	if strings.TrimSpace(ref) == "" || isNonHTTPLink(ref) {
		return
	}
	m.Add(sel.Text(), page.Resolve(ref))
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

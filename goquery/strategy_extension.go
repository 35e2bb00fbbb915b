package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/epaper"
)

var _ epaper.Strategy = (*ExtensionStrategy)(nil)

// ExtensionStrategy collects every anchor whose href names a PDF document.
type ExtensionStrategy struct{}

// NewExtensionStrategy creates a new ExtensionStrategy.
func NewExtensionStrategy() *ExtensionStrategy {
	return &ExtensionStrategy{}
}

// Name returns the strategy's identifier.
func (s *ExtensionStrategy) Name() string {
	return "extension"
}

// Extract returns anchors whose href, ignoring query and fragment, ends in
// ".pdf" (case-insensitive), keyed by anchor text.
func (s *ExtensionStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parsePage(ctx, page)
	if err != nil {
		return nil, err
	}

	m := epaper.NewEditionMapping()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if hasPDFExtension(href) {
			addAnchor(m, page, sel, href)
		}
	})
	return m, nil
}

func hasPDFExtension(href string) bool {
	path := strings.TrimSpace(href)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/epaper"
)

var _ epaper.Strategy = (*DataAttributeStrategy)(nil)

// DefaultDataAttributes are the auxiliary attributes that carry document URLs.
var DefaultDataAttributes = []string{"data-pdf", "data-file", "data-document"}

// DataAttributeStrategy collects anchors that carry their document URL in
// an auxiliary data attribute.
type DataAttributeStrategy struct {
	Attributes []string
}

// NewDataAttributeStrategy creates a DataAttributeStrategy using DefaultDataAttributes.
func NewDataAttributeStrategy() *DataAttributeStrategy {
	return &DataAttributeStrategy{Attributes: DefaultDataAttributes}
}

// Name returns the strategy's identifier.
func (s *DataAttributeStrategy) Name() string {
	return "data-attribute"
}

// Extract returns anchors carrying any of the attributes. The URL is href
// when it is a usable link, otherwise the first non-blank attribute in
// Attributes order.
func (s *DataAttributeStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parsePage(ctx, page)
	if err != nil {
		return nil, err
	}

	selectors := make([]string, len(s.Attributes))
	for i, attr := range s.Attributes {
		selectors[i] = "a[" + attr + "]"
	}

	m := epaper.NewEditionMapping()
	if len(selectors) == 0 {
		return m, nil
	}

	doc.Find(strings.Join(selectors, ", ")).Each(func(_ int, sel *goquery.Selection) {
		ref := sel.AttrOr("href", "")
		if strings.TrimSpace(ref) == "" || isNonHTTPLink(ref) {
			ref = ""
			for _, attr := range s.Attributes {
				if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
					ref = v
					break
				}
			}
		}
		addAnchor(m, page, sel, ref)
	})
	return m, nil
}

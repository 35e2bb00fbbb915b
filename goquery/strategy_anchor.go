package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/epaper"
)

var _ epaper.Strategy = (*AnchorTextStrategy)(nil)

// DefaultAnchorKeywords is the vocabulary of download-like anchor texts.
var DefaultAnchorKeywords = []string{"pdf", "PDF", "下载", "Download", "版面", "Edition"}

// AnchorTextStrategy collects anchors whose visible text contains a
// download-like keyword.
type AnchorTextStrategy struct {
	// Keywords are matched case-sensitively, in order.
	Keywords []string
}

// NewAnchorTextStrategy creates an AnchorTextStrategy using DefaultAnchorKeywords.
func NewAnchorTextStrategy() *AnchorTextStrategy {
	return &AnchorTextStrategy{Keywords: DefaultAnchorKeywords}
}

// Name returns the strategy's identifier.
func (s *AnchorTextStrategy) Name() string {
	return "anchor-text"
}

// Extract scans anchors once per keyword, so entries are ordered by
// keyword first and document position second.
func (s *AnchorTextStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parsePage(ctx, page)
	if err != nil {
		return nil, err
	}

	anchors := doc.Find("a[href]")
	m := epaper.NewEditionMapping()
	for _, keyword := range s.Keywords {
		anchors.Each(func(_ int, sel *goquery.Selection) {
			if !strings.Contains(sel.Text(), keyword) {
				return
			}
			href, _ := sel.Attr("href")
			addAnchor(m, page, sel, href)
		})
	}
	return m, nil
}

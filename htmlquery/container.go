package htmlquery

import (
	"context"

	"github.com/fwojciec/epaper"
)

var _ epaper.Strategy = (*ContainerStrategy)(nil)

// ContainerPattern selects item nodes and, relative to each item, the
// node carrying the title and the node carrying the document link.
type ContainerPattern struct {
	Items string
	Title string
	Link  string
}

const (
	headingLike = ".//*[self::h1 or self::h2 or self::h3 or self::h4 or self::h5 or self::h6 or contains(@class,'title')]"
	pdfLink     = ".//a[contains(@href,'.pdf')]"
)

// DefaultContainerPatterns lists known site layouts first, then generic
// list, table and card containers.
var DefaultContainerPatterns = []ContainerPattern{
	{Items: "//div[@class='Chunkiconlist']/p", Title: "a[1]", Link: "a[2]"},
	{Items: "//tr", Title: ".//span[contains(@class,'default')]", Link: pdfLink},
	{Items: "//li", Title: headingLike, Link: pdfLink},
	{Items: "//tr", Title: headingLike, Link: pdfLink},
	{Items: "//div[contains(@class,'card') or contains(@class,'item')]", Title: headingLike, Link: pdfLink},
}

// ContainerStrategy extracts one edition per container element, pairing
// the first title node and first link node inside it.
type ContainerStrategy struct {
	Patterns []ContainerPattern
}

// NewContainerStrategy creates a ContainerStrategy using DefaultContainerPatterns.
func NewContainerStrategy() *ContainerStrategy {
	return &ContainerStrategy{Patterns: DefaultContainerPatterns}
}

// Name returns the strategy's identifier.
func (s *ContainerStrategy) Name() string {
	return "container"
}

// Extract returns the entries of the first pattern that yields any.
func (s *ContainerStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parse(ctx, page)
	if err != nil {
		return nil, err
	}

	for _, p := range s.Patterns {
		items, err := queryAll(doc, p.Items)
		if err != nil {
			return nil, err
		}

		m := epaper.NewEditionMapping()
		for _, item := range items {
			title, err := query(item, p.Title)
			if err != nil {
				return nil, err
			}
			link, err := query(item, p.Link)
			if err != nil {
				return nil, err
			}
			if title == nil || link == nil {
				continue
			}
			if ref := href(link); ref != "" {
				m.Add(text(title), page.Resolve(ref))
			}
		}
		if m.Len() > 0 {
			return m, nil
		}
	}

	return epaper.NewEditionMapping(), nil
}

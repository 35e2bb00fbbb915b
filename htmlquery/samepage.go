package htmlquery

import (
	"context"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Strategy = (*SamePageStrategy)(nil)
	_ epaper.Strategy = (*AttributeValueStrategy)(nil)
)

// Pair selects edition titles and their document links as two parallel
// node lists.
type Pair struct {
	Titles string
	Links  string
}

// DefaultSamePagePairs are layouts where the index page lists every
// section title alongside its document link.
var DefaultSamePagePairs = []Pair{
	{Titles: "//div[@class='ellipsis title-text']", Links: "//div[@class='pdf-ico']/a"},
	{Titles: "//div[@class='right_title-name']/a", Links: "//div[@class='right_title-pdf']/a"},
	{Titles: "//*[@id='pageLink']", Links: "//*[@id='pgn']/table/tbody/tr/td[2]/div/a"},
	{Titles: "//*[@id='pageLink']", Links: "//*[@class='right_title-pdf']/a"},
}

// SamePageStrategy extracts editions listed as parallel title and link
// lists on the index page itself.
type SamePageStrategy struct {
	Pairs []Pair
}

// NewSamePageStrategy creates a SamePageStrategy using DefaultSamePagePairs.
func NewSamePageStrategy() *SamePageStrategy {
	return &SamePageStrategy{Pairs: DefaultSamePagePairs}
}

// Name returns the strategy's identifier.
func (s *SamePageStrategy) Name() string {
	return "same-page"
}

// Extract tries each pair in order. A pair applies only when both lists
// are non-empty and equally long; titles and links are then zipped by
// index. The first pair producing an entry wins.
func (s *SamePageStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parse(ctx, page)
	if err != nil {
		return nil, err
	}

	for _, pair := range s.Pairs {
		titles, err := queryAll(doc, pair.Titles)
		if err != nil {
			return nil, err
		}
		links, err := queryAll(doc, pair.Links)
		if err != nil {
			return nil, err
		}
		if len(titles) == 0 || len(titles) != len(links) {
			continue
		}

		m := epaper.NewEditionMapping()
		for i := range titles {
			if ref := href(links[i]); ref != "" {
				m.Add(text(titles[i]), page.Resolve(ref))
			}
		}
		if m.Len() > 0 {
			return m, nil
		}
	}

	return epaper.NewEditionMapping(), nil
}

// ValuePair selects edition titles and the nodes whose Attr attribute
// carries the document URL.
type ValuePair struct {
	Titles string
	Values string
	Attr   string
}

// DefaultValuePairs are layouts that keep document URLs in form inputs.
var DefaultValuePairs = []ValuePair{
	{Titles: "//*[@id='layoutlist']/li/a", Values: "//li[@class='posRelative']/input", Attr: "value"},
}

// AttributeValueStrategy extracts editions whose document URLs are stored
// in an attribute of a parallel node list, typically hidden inputs.
type AttributeValueStrategy struct {
	Pairs []ValuePair
}

// NewAttributeValueStrategy creates an AttributeValueStrategy using DefaultValuePairs.
func NewAttributeValueStrategy() *AttributeValueStrategy {
	return &AttributeValueStrategy{Pairs: DefaultValuePairs}
}

// Name returns the strategy's identifier.
func (s *AttributeValueStrategy) Name() string {
	return "attribute-value"
}

// Extract applies the same equal-length rule as SamePageStrategy.
func (s *AttributeValueStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parse(ctx, page)
	if err != nil {
		return nil, err
	}

	for _, pair := range s.Pairs {
		titles, err := queryAll(doc, pair.Titles)
		if err != nil {
			return nil, err
		}
		values, err := queryAll(doc, pair.Values)
		if err != nil {
			return nil, err
		}
		if len(titles) == 0 || len(titles) != len(values) {
			continue
		}

		m := epaper.NewEditionMapping()
		for i := range titles {
			if ref := attr(values[i], pair.Attr); ref != "" {
				m.Add(text(titles[i]), page.Resolve(ref))
			}
		}
		if m.Len() > 0 {
			return m, nil
		}
	}

	return epaper.NewEditionMapping(), nil
}

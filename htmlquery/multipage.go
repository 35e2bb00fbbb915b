package htmlquery

import (
	"context"
	"time"

	"github.com/fwojciec/epaper"
	"golang.org/x/sync/errgroup"
)

var _ epaper.Strategy = (*MultiPageStrategy)(nil)

// Default limits for MultiPageStrategy.
const (
	DefaultMaxSections  = 40
	DefaultConcurrency  = 4
	DefaultFetchTimeout = 15 * time.Second
)

// DefaultSectionPatterns select links from the index page to per-section
// pages.
var DefaultSectionPatterns = []string{
	"//*[@id='pageLink']",
	"//*[@id='APP-SectionNav']/li/a",
	"//*[@class='titlebox']/span",
	"//li[1]/a",
	"//a[contains(@href,'node')]",
	"//a[contains(@href,'page')]",
	"//a[contains(text(),'版')]",
}

// DefaultDocumentPatterns select the document link on a section page.
var DefaultDocumentPatterns = []string{
	"//*[@id='main']/div[1]/div[2]/p[2]/a",
	"/html/body/div[2]/div[1]/div[2]/p[2]/a",
	"//*[@id='pdf_toolbar']/a",
	"//*[@class='pdf']/a",
	"//*[@id='APP-Pdf']",
	"//a[contains(@href,'.pdf')]",
	"//a[contains(text(),'PDF')]",
	"//a[contains(text(),'pdf')]",
	"//a[contains(text(),'下载')]",
}

// MultiPageStrategy extracts editions from sites that put each section's
// document link on its own page. Section pages are resolved concurrently.
type MultiPageStrategy struct {
	// Resolver fetches section pages, following their redirects.
	Resolver epaper.Resolver

	SectionPatterns  []string
	DocumentPatterns []string

	// MaxSections caps the number of section pages fetched.
	MaxSections int

	// Concurrency limits concurrent section fetches.
	Concurrency int

	// FetchTimeout bounds each section fetch.
	FetchTimeout time.Duration
}

// NewMultiPageStrategy creates a MultiPageStrategy with default patterns
// and limits.
func NewMultiPageStrategy(resolver epaper.Resolver) *MultiPageStrategy {
	return &MultiPageStrategy{
		Resolver:         resolver,
		SectionPatterns:  DefaultSectionPatterns,
		DocumentPatterns: DefaultDocumentPatterns,
		MaxSections:      DefaultMaxSections,
		Concurrency:      DefaultConcurrency,
		FetchTimeout:     DefaultFetchTimeout,
	}
}

// Name returns the strategy's identifier.
func (s *MultiPageStrategy) Name() string {
	return "multi-page"
}

type section struct {
	title string
	url   string
}

// Extract collects sections with the first section pattern that yields
// any, then takes the first document link found on each section page.
// Sections that fail to load or have no document link are skipped.
// Entries follow section order.
func (s *MultiPageStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	sections, err := s.sections(ctx, page)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(sections))

	var g errgroup.Group
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for i, sec := range sections {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			urls[i] = s.documentURL(ctx, sec.url)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := epaper.NewEditionMapping()
	for i, sec := range sections {
		if urls[i] != "" {
			m.Add(sec.title, urls[i])
		}
	}
	return m, nil
}

func (s *MultiPageStrategy) sections(ctx context.Context, page *epaper.Page) ([]section, error) {
	doc, err := parse(ctx, page)
	if err != nil {
		return nil, err
	}

	for _, pattern := range s.SectionPatterns {
		nodes, err := queryAll(doc, pattern)
		if err != nil {
			return nil, err
		}

		var sections []section
		seen := make(map[string]bool)
		for _, n := range nodes {
			title, ref := text(n), href(n)
			if title == "" || ref == "" || seen[title] {
				continue
			}
			seen[title] = true
			sections = append(sections, section{title: title, url: page.Resolve(ref)})
			if s.MaxSections > 0 && len(sections) == s.MaxSections {
				break
			}
		}
		if len(sections) > 0 {
			return sections, nil
		}
	}

	return nil, nil
}

// documentURL resolves the section page at url and returns its document
// link, or "" when the page cannot be loaded or has none.
func (s *MultiPageStrategy) documentURL(ctx context.Context, url string) string {
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}

	page, err := s.Resolver.Resolve(ctx, url)
	if err != nil {
		return ""
	}

	doc, err := parse(ctx, page)
	if err != nil {
		return ""
	}

	for _, pattern := range s.DocumentPatterns {
		nodes, err := queryAll(doc, pattern)
		if err != nil {
			return ""
		}
		for _, n := range nodes {
			if ref := href(n); ref != "" {
				return page.Resolve(ref)
			}
		}
	}
	return ""
}

package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Strategy = (*FrameStrategy)(nil)
	_ epaper.Strategy = (*ScriptStrategy)(nil)
)

// FrameStrategy collects PDF documents embedded through iframe or embed
// elements.
type FrameStrategy struct{}

// NewFrameStrategy creates a new FrameStrategy.
func NewFrameStrategy() *FrameStrategy {
	return &FrameStrategy{}
}

// Name returns the strategy's identifier.
func (s *FrameStrategy) Name() string {
	return "frame"
}

// Extract returns iframe and embed sources containing ".pdf". The title
// attribute names the entry; untitled frames are numbered "PDF 1", "PDF 2"
// and so on, counting untitled frames only. A source embedded more than
// once is counted once.
func (s *FrameStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parsePage(ctx, page)
	if err != nil {
		return nil, err
	}

	m := epaper.NewEditionMapping()
	seen := make(map[string]bool)
	untitled := 0
	doc.Find("iframe[src], embed[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !strings.Contains(src, ".pdf") {
			return
		}
		resolved := page.Resolve(src)
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		title := strings.TrimSpace(sel.AttrOr("title", ""))
		if title == "" {
			untitled++
			title = fmt.Sprintf("PDF %d", untitled)
		}
		m.Add(title, resolved)
	})
	return m, nil
}

var scriptPDFPattern = regexp.MustCompile(`https?://[^"'\s]*\.pdf[^"'\s]*`)

// ScriptStrategy collects absolute PDF URLs that appear in inline scripts.
type ScriptStrategy struct{}

// NewScriptStrategy creates a new ScriptStrategy.
func NewScriptStrategy() *ScriptStrategy {
	return &ScriptStrategy{}
}

// Name returns the strategy's identifier.
func (s *ScriptStrategy) Name() string {
	return "script"
}

// Extract returns every distinct PDF URL found in script text, titled
// "PDF 1", "PDF 2" and so on in order of first appearance.
func (s *ScriptStrategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	doc, err := parsePage(ctx, page)
	if err != nil {
		return nil, err
	}

	m := epaper.NewEditionMapping()
	seen := make(map[string]bool)
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		for _, u := range scriptPDFPattern.FindAllString(sel.Text(), -1) {
			if seen[u] {
				continue
			}
			seen[u] = true
			m.Add(fmt.Sprintf("PDF %d", len(seen)), u)
		}
	})
	return m, nil
}

// Package analyze provides edition analysis orchestration.
// It resolves a newspaper start URL and runs every extraction strategy
// against the resulting page, keeping the richest mapping.
package analyze

import (
	"context"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/goquery"
	"github.com/fwojciec/epaper/htmlquery"
)

// Ensure Analyzer implements epaper.Analyzer at compile time.
var _ epaper.Analyzer = (*Analyzer)(nil)

// Analyzer orchestrates edition extraction for newspaper index pages.
type Analyzer struct {
	Resolver   epaper.Resolver
	Strategies []epaper.Strategy
}

// DefaultStrategies returns the built-in strategies in priority order.
// Earlier strategies win ties.
func DefaultStrategies(resolver epaper.Resolver) []epaper.Strategy {
	return []epaper.Strategy{
		htmlquery.NewSamePageStrategy(),
		htmlquery.NewMultiPageStrategy(resolver),
		htmlquery.NewAttributeValueStrategy(),
		goquery.NewExtensionStrategy(),
		goquery.NewAnchorTextStrategy(),
		goquery.NewDataAttributeStrategy(),
		goquery.NewFrameStrategy(),
		goquery.NewScriptStrategy(),
		htmlquery.NewContainerStrategy(),
	}
}

// Result holds the outcome of an analysis.
type Result struct {
	// Page is the resolved start page.
	Page *epaper.Page

	// Editions is the winning mapping. It is never nil.
	Editions *epaper.EditionMapping

	// Strategy names the winning strategy, or is empty when every strategy
	// came back empty.
	Strategy string

	// Counts holds the entry count of every strategy that finished, keyed
	// by strategy name.
	Counts map[string]int

	// Partial reports that ctx ended before every strategy finished.
	Partial bool
}

// strategyResult holds the outcome of running a single strategy.
type strategyResult struct {
	index    int
	editions *epaper.EditionMapping
}

// Analyze resolves url and returns the best edition mapping.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*epaper.EditionMapping, error) {
	result, err := a.Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return result.Editions, nil
}

// Run resolves url, runs every strategy concurrently against the page, and
// selects the mapping with the most entries. Ties go to the strategy
// registered first. A strategy that fails or panics counts as empty.
//
// Resolver failures are returned unchanged. If ctx ends while strategies
// are running, Run returns the best mapping among the strategies that had
// finished, with Partial set and a nil error.
func (a *Analyzer) Run(ctx context.Context, url string) (*Result, error) {
	page, err := a.Resolver.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}

	resultCh := make(chan strategyResult, len(a.Strategies))
	for i, s := range a.Strategies {
		go func() {
			resultCh <- strategyResult{index: i, editions: extract(ctx, s, page)}
		}()
	}

	mappings, partial := collect(ctx, resultCh, len(a.Strategies))
	return a.choose(page, mappings, partial), nil
}

// collect receives n strategy results, indexed by strategy. When ctx ends
// first it keeps whatever results are already buffered and reports partial
// if any are still missing.
func collect(ctx context.Context, resultCh <-chan strategyResult, n int) (mappings []*epaper.EditionMapping, partial bool) {
	mappings = make([]*epaper.EditionMapping, n)
	received := 0
	for received < n {
		select {
		case r := <-resultCh:
			mappings[r.index] = r.editions
			received++
		case <-ctx.Done():
			for received < n {
				select {
				case r := <-resultCh:
					mappings[r.index] = r.editions
					received++
				default:
					return mappings, true
				}
			}
		}
	}
	return mappings, false
}

// choose picks the first mapping with the greatest length. Nil entries are
// strategies that did not finish.
func (a *Analyzer) choose(page *epaper.Page, mappings []*epaper.EditionMapping, partial bool) *Result {
	result := &Result{
		Page:     page,
		Editions: epaper.NewEditionMapping(),
		Counts:   make(map[string]int),
		Partial:  partial,
	}

	for i, m := range mappings {
		if m == nil {
			continue
		}
		name := a.Strategies[i].Name()
		result.Counts[name] = m.Len()
		if m.Len() > result.Editions.Len() {
			result.Editions = m
			result.Strategy = name
		}
	}

	return result
}

// extract runs s, converting errors and panics into an empty mapping.
func extract(ctx context.Context, s epaper.Strategy, page *epaper.Page) (m *epaper.EditionMapping) {
	defer func() {
		if r := recover(); r != nil {
			m = epaper.NewEditionMapping()
		}
		if m == nil {
			m = epaper.NewEditionMapping()
		}
	}()

	m, err := s.Extract(ctx, page)
	if err != nil {
		return epaper.NewEditionMapping()
	}
	return m
}

package mock

import (
	"context"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Resolver = (*Resolver)(nil)
	_ epaper.Strategy = (*Strategy)(nil)
	_ epaper.Analyzer = (*Analyzer)(nil)
)

// Resolver is a mock implementation of epaper.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, url string) (*epaper.Page, error)
}

func (r *Resolver) Resolve(ctx context.Context, url string) (*epaper.Page, error) {
	return r.ResolveFn(ctx, url)
}

// Strategy is a mock implementation of epaper.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, page *epaper.Page) (*epaper.EditionMapping, error) {
	return s.ExtractFn(ctx, page)
}

// Analyzer is a mock implementation of epaper.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*epaper.EditionMapping, error)
}

func (a *Analyzer) Analyze(ctx context.Context, url string) (*epaper.EditionMapping, error) {
	return a.AnalyzeFn(ctx, url)
}

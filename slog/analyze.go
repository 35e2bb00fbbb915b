package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Resolver = (*LoggingResolver)(nil)
	_ epaper.Strategy = (*LoggingStrategy)(nil)
	_ epaper.Analyzer = (*LoggingAnalyzer)(nil)
)

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   epaper.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next epaper.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the final URL and
// the number of redirects taken.
func (r *LoggingResolver) Resolve(ctx context.Context, url string) (page *epaper.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin), "err", err}
		if page != nil {
			attrs = append(attrs, "final", page.BaseURL(), "hops", len(page.Hops()))
		}
		r.logger.Debug("resolve", attrs...)
	}(time.Now())
	return r.next.Resolve(ctx, url)
}

// LoggingStrategy wraps a Strategy with logging.
type LoggingStrategy struct {
	next   epaper.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next epaper.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// WrapStrategies decorates every strategy in order.
func WrapStrategies(strategies []epaper.Strategy, logger *slog.Logger) []epaper.Strategy {
	wrapped := make([]epaper.Strategy, len(strategies))
	for i, s := range strategies {
		wrapped[i] = NewLoggingStrategy(s, logger)
	}
	return wrapped
}

// Name returns the wrapped strategy's name.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the entry count.
func (s *LoggingStrategy) Extract(ctx context.Context, page *epaper.Page) (editions *epaper.EditionMapping, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("strategy",
			"name", s.next.Name(),
			"url", page.BaseURL(),
			"count", editions.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(ctx, page)
}

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   epaper.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next epaper.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the edition count.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string) (editions *epaper.EditionMapping, err error) {
	defer func(begin time.Time) {
		a.logger.Info("analyze",
			"url", url,
			"count", editions.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, url)
}

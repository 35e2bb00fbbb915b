// Package slog provides log/slog decorators for epaper services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Fetcher    = (*LoggingFetcher)(nil)
	_ epaper.Downloader = (*LoggingDownloader)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   epaper.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next epaper.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, finalURL string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"final", finalURL,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   epaper.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next epaper.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, url string, destPath string) (err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"path", destPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, destPath)
}

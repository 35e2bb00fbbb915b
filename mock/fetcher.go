package mock

import (
	"context"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.Fetcher       = (*Fetcher)(nil)
	_ epaper.Downloader    = (*Downloader)(nil)
	_ epaper.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of epaper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Downloader is a mock implementation of epaper.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, destPath string) error
}

func (d *Downloader) Download(ctx context.Context, url string, destPath string) error {
	return d.DownloadFn(ctx, url, destPath)
}

// DomainLimiter is a mock implementation of epaper.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

package epaper

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL, following HTTP redirects, and returns the
	// HTML together with the URL it was finally served from.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, finalURL string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Downloader saves documents to disk.
type Downloader interface {
	// Download writes the document at url to destPath.
	// Returns EFETCH if the document cannot be retrieved.
	Download(ctx context.Context, url string, destPath string) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Package rod provides a browser-backed epaper.Fetcher for newspaper sites
// that build their edition lists with JavaScript.
package rod

import (
	"context"
	neturl "net/url"
	"time"

	"github.com/fwojciec/epaper"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRenderDelay is how long to wait after the load event for scripts
// that populate the page late.
const DefaultRenderDelay = 500 * time.Millisecond

// Ensure Fetcher implements epaper.Fetcher at compile time.
var _ epaper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	renderDelay  time.Duration
	maxPages     int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page render.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderDelay sets the pause between the load event and reading the DOM.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// WithBrowserPages sets how many pages are rendered before the browser is
// recycled.
func WithBrowserPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		renderDelay:  DefaultRenderDelay,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages), WithManagerUserAgent(f.userAgent))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML together with the
// URL the browser ended up on after redirects.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if !isHTTP(url) {
		return "", "", epaper.Errorf(epaper.EINVALID, "unsupported URL %q", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	tab, err := f.manager.OpenPage()
	if err != nil {
		return "", "", err
	}
	defer tab.Close()

	page := tab.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", "", fetchError(ctx, err, url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", "", fetchError(ctx, err, url)
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", "", fetchError(ctx, ctx.Err(), url)
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", "", fetchError(ctx, err, url)
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return html, finalURL, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// fetchError reports the context error when the render was cut short so
// callers can match it with errors.Is.
func fetchError(ctx context.Context, err error, url string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return epaper.Wrapf(ctxErr, epaper.EFETCH, "rendering %s", url)
	}
	return epaper.Wrapf(err, epaper.EFETCH, "rendering %s", url)
}

// isHTTP reports whether raw is an absolute http or https URL.
func isHTTP(raw string) bool {
	u, err := neturl.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

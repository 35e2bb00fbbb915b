// Package http provides HTTP-based implementations of epaper.Fetcher and
// epaper.Downloader for static newspaper sites.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/epaper"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. Several newspaper sites
// refuse requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// MaxPageSize caps the number of bytes read from a page.
const MaxPageSize = 10 << 20

// Ensure Fetcher implements epaper.Fetcher at compile time.
var _ epaper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only. Responses are decoded to UTF-8 using the
// charset declared by the server or the document.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher or Downloader.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	client    *http.Client
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithClient uses client instead of a client built from the timeout.
func WithClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

func buildOptions(opts []Option) options {
	o := options{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: o.timeout}
	}
	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := buildOptions(opts)
	return &Fetcher{
		client:    o.client,
		timeout:   o.timeout,
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the HTML content from the given URL and reports the URL
// the content was served from after HTTP redirects.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	resp, err := get(ctx, f.client, f.userAgent, url)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	reader, err := charset.NewReader(io.LimitReader(resp.Body, MaxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", "", epaper.Wrapf(err, epaper.EFETCH, "decode %s", url)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", "", epaper.Wrapf(err, epaper.EFETCH, "read %s", url)
	}

	return string(body), resp.Request.URL.String(), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get issues a GET request and returns the response when the status is 200.
func get(ctx context.Context, client *http.Client, userAgent, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, epaper.Wrapf(err, epaper.EINVALID, "invalid URL %q", url)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, epaper.Errorf(epaper.EINVALID, "unsupported URL scheme %q in %s", req.URL.Scheme, url)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, epaper.Wrapf(err, epaper.EFETCH, "fetch %s", url)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, epaper.Wrapf(&epaper.StatusError{StatusCode: resp.StatusCode, URL: url}, epaper.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}

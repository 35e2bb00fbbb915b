package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/epaper"
)

// Site is an in-memory web of pages for tests. Fetch serves the page
// registered for a URL and reports the URL itself as final, unless a
// redirect is registered for it.
type Site struct {
	mu        sync.Mutex
	pages     map[string]string
	redirects map[string]string
	fetched   []string
}

// NewSite returns an empty Site.
func NewSite() *Site {
	return &Site{
		pages:     make(map[string]string),
		redirects: make(map[string]string),
	}
}

// Page registers html at url.
func (s *Site) Page(url, html string) *Site {
	s.pages[url] = html
	return s
}

// Redirect makes requests for from end up at to, like an HTTP redirect.
func (s *Site) Redirect(from, to string) *Site {
	s.redirects[from] = to
	return s
}

// Fetcher returns a Fetcher serving the site's pages. Unknown URLs fail
// with EFETCH.
func (s *Site) Fetcher() *Fetcher {
	return &Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, string, error) {
			if err := ctx.Err(); err != nil {
				return "", "", err
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetched = append(s.fetched, url)
			final := url
			if to, ok := s.redirects[url]; ok {
				final = to
			}
			html, ok := s.pages[final]
			if !ok {
				return "", "", epaper.Errorf(epaper.EFETCH, "HTTP 404 for %s", url)
			}
			return html, final, nil
		},
		CloseFn: func() error { return nil },
	}
}

// Fetched returns the URLs requested so far, in order.
func (s *Site) Fetched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

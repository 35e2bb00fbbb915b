package resolve

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/epaper"
	"golang.org/x/time/rate"
)

var _ epaper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each newspaper site with a token
// bucket per site. "www.x.com" and "X.com" share a bucket.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst lets n requests to a site through back to back before spacing
// kicks in. Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter allows rps requests per second to each site.
// A non-positive rps disables limiting.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limit:   rate.Inf,
		burst:   1,
		buckets: make(map[string]*rate.Limiter),
	}
	if rps > 0 {
		d.limit = rate.Limit(rps)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed or ctx ends.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(siteKey(domain)).Wait(ctx)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, d.burst)
		d.buckets[key] = b
	}
	return b
}

func siteKey(domain string) string {
	key := strings.ToLower(strings.TrimSuffix(domain, "."))
	return strings.TrimPrefix(key, "www.")
}

// hostOf returns the host of rawURL, or rawURL itself when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}

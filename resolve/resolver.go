// Package resolve follows HTTP, meta refresh and script redirects from a
// newspaper start URL to the page that carries its editions.
package resolve

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/goquery"
)

// DefaultMaxHops is the default number of refresh or script redirects
// followed after the initial fetch.
const DefaultMaxHops = 5

// Rewrite replaces a start URL whose host is Host, or a subdomain of it,
// with the site root joined with Path. Some sites serve their edition
// index at a fixed path that no redirect on the home page points to.
type Rewrite struct {
	Host string
	Path string
}

// DefaultRewrites are the start URL rewrites applied unless WithRewrites
// overrides them.
var DefaultRewrites = []Rewrite{
	{Host: "wccdaily.com.cn", Path: "/shtml/index_hxdsb.shtml"},
}

// Ensure Resolver implements epaper.Resolver at compile time.
var _ epaper.Resolver = (*Resolver)(nil)

// Resolver fetches a start URL and follows redirect directives embedded in
// the returned HTML.
type Resolver struct {
	fetcher     epaper.Fetcher
	logger      *slog.Logger
	limiter     epaper.DomainLimiter
	retryDelays []time.Duration
	maxHops     int
	rewrites    []Rewrite
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for hop and retry events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithRateLimiter waits on limiter, keyed by host, before every fetch.
func WithRateLimiter(limiter epaper.DomainLimiter) Option {
	return func(r *Resolver) {
		r.limiter = limiter
	}
}

// WithRetryDelays retries failed fetches after each delay.
// Without this option every fetch is attempted once.
func WithRetryDelays(delays []time.Duration) Option {
	return func(r *Resolver) {
		r.retryDelays = delays
	}
}

// WithMaxHops sets the number of refresh or script redirects followed
// before Resolve gives up with ELOOP.
func WithMaxHops(n int) Option {
	return func(r *Resolver) {
		r.maxHops = n
	}
}

// WithRewrites replaces DefaultRewrites.
func WithRewrites(rewrites []Rewrite) Option {
	return func(r *Resolver) {
		r.rewrites = rewrites
	}
}

// NewResolver creates a Resolver fetching through fetcher.
func NewResolver(fetcher epaper.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:  fetcher,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxHops:  DefaultMaxHops,
		rewrites: DefaultRewrites,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the page reached from rawURL.
//
// The transport follows HTTP redirects. Then, while the page carries a meta
// refresh directive or a script location assignment pointing somewhere new,
// the target is fetched and becomes the current page. A target that was
// already visited ends the chase. A hop that fails to fetch is abandoned and
// the page before it is returned.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*epaper.Page, error) {
	start := r.rewrite(rawURL)
	if start != rawURL {
		r.logger.Debug("rewrite", "url", rawURL, "target", start)
	}

	html, base, err := r.fetch(ctx, start)
	if err != nil {
		return nil, err
	}

	var hops []epaper.RedirectHop
	if base != start {
		hops = append(hops, epaper.RedirectHop{Source: start, Target: base, Mechanism: epaper.RedirectHTTP})
	}
	visited := map[string]bool{start: true, base: true}

	for followed := 0; ; followed++ {
		target, mechanism, ok := nextHop(html, base)
		if !ok {
			break
		}
		if visited[target] {
			r.logger.Debug("redirect cycle", "url", base, "target", target)
			break
		}
		if followed >= r.maxHops {
			return nil, epaper.Errorf(epaper.ELOOP, "more than %d redirects from %s", r.maxHops, rawURL)
		}
		visited[target] = true

		nextHTML, nextBase, err := r.fetch(ctx, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, epaper.Wrapf(ctxErr, epaper.EFETCH, "resolve %s", rawURL)
			}
			r.logger.Warn("redirect failed", "url", base, "target", target, "mechanism", mechanism.String(), "err", err)
			break
		}

		r.logger.Debug("redirect", "url", base, "target", target, "mechanism", mechanism.String())
		hops = append(hops, epaper.RedirectHop{Source: base, Target: target, Mechanism: mechanism})
		if nextBase != target {
			hops = append(hops, epaper.RedirectHop{Source: target, Target: nextBase, Mechanism: epaper.RedirectHTTP})
			visited[nextBase] = true
		}
		html, base = nextHTML, nextBase
	}

	return epaper.NewPage(html, base, hops...), nil
}

// fetch retrieves url through the limiter and retry policy. The returned
// base is the final URL reported by the fetcher, or url when it reports none.
func (r *Resolver) fetch(ctx context.Context, url string) (string, string, error) {
	html, finalURL, err := r.fetchWithRetries(ctx, url, func(ctx context.Context) (string, string, error) {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx, hostOf(url)); err != nil {
				return "", "", epaper.Wrapf(err, epaper.EFETCH, "rate limit %s", url)
			}
		}
		return r.fetcher.Fetch(ctx, url)
	})
	if err != nil {
		if epaper.ErrorCode(err) == epaper.EINTERNAL {
			err = epaper.Wrapf(err, epaper.EFETCH, "fetch %s", url)
		}
		return "", "", err
	}
	if finalURL == "" {
		finalURL = url
	}
	return html, finalURL, nil
}

// nextHop returns the redirect target declared by html, resolved against
// base. Meta refresh takes precedence over script assignments. Targets equal
// to base are not hops.
func nextHop(html, base string) (string, epaper.RedirectMechanism, bool) {
	if ref := goquery.RefreshTarget(html); ref != "" {
		if target := epaper.ToAbsolute(ref, base); target != "" && target != base {
			return target, epaper.RedirectMetaRefresh, true
		}
	}

	scripts := strings.Join(goquery.ScriptTexts(html), "\n")
	for _, ref := range ScriptTargets(scripts) {
		if target := epaper.ToAbsolute(ref, base); target != "" && target != base {
			return target, epaper.RedirectScript, true
		}
	}

	return "", 0, false
}

func (r *Resolver) rewrite(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	for _, rw := range r.rewrites {
		h := strings.ToLower(rw.Host)
		if host == h || strings.HasSuffix(host, "."+h) {
			return u.Scheme + "://" + u.Host + rw.Path
		}
	}
	return rawURL
}

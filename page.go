package epaper

// RedirectMechanism identifies how a redirect was discovered.
type RedirectMechanism int

// Redirect mechanisms followed by a Resolver.
const (
	RedirectHTTP RedirectMechanism = iota
	RedirectMetaRefresh
	RedirectScript
)

// String returns the mechanism name used in logs.
func (m RedirectMechanism) String() string {
	switch m {
	case RedirectHTTP:
		return "http"
	case RedirectMetaRefresh:
		return "meta-refresh"
	case RedirectScript:
		return "script"
	default:
		return "unknown"
	}
}

// RedirectHop records one redirect taken while resolving a page.
// Hops are kept for debugging and are never persisted.
type RedirectHop struct {
	Source    string
	Target    string
	Mechanism RedirectMechanism
}

// Page is a fetched page after all redirects have been followed.
// A Page is immutable; strategies read it concurrently.
type Page struct {
	content string
	baseURL string
	hops    []RedirectHop
}

// NewPage returns a Page holding content fetched from baseURL.
func NewPage(content, baseURL string, hops ...RedirectHop) *Page {
	p := &Page{
		content: content,
		baseURL: baseURL,
	}
	if len(hops) > 0 {
		p.hops = append([]RedirectHop(nil), hops...)
	}
	return p
}

// Content returns the raw HTML.
func (p *Page) Content() string {
	return p.content
}

// BaseURL returns the URL the content was finally served from.
func (p *Page) BaseURL() string {
	return p.baseURL
}

// Hops returns a copy of the redirects taken to reach the page, in order.
func (p *Page) Hops() []RedirectHop {
	return append([]RedirectHop(nil), p.hops...)
}

// Resolve makes ref absolute against the page's base URL.
func (p *Page) Resolve(ref string) string {
	return ToAbsolute(ref, p.baseURL)
}

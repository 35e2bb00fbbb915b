package epaper

import "context"

// Resolver fetches a URL and follows HTTP, meta refresh and script
// redirects to the page that carries the content.
type Resolver interface {
	// Resolve returns the final page reached from url.
	// Returns EFETCH when the page cannot be fetched and ELOOP when the
	// redirect chain is too long.
	Resolve(ctx context.Context, url string) (*Page, error)
}

// Strategy extracts editions from a page using one layout convention.
// Strategies are stateless and must not modify the page.
type Strategy interface {
	// Name returns the strategy's identifier (e.g., "same-page", "extension").
	Name() string

	// Extract returns the editions found on the page. A page the strategy
	// does not recognize yields an empty mapping, not an error.
	Extract(ctx context.Context, page *Page) (*EditionMapping, error)
}

// Analyzer maps a newspaper index page to its editions.
type Analyzer interface {
	// Analyze resolves url and returns the best edition mapping found.
	// An empty mapping means no documents were discoverable.
	Analyze(ctx context.Context, url string) (*EditionMapping, error)
}

package epaper

// Converter renders a resolved page as Markdown when no editions can be
// found on it.
type Converter interface {
	// ConvertPage transforms a page into Markdown, resolving links against
	// the page's base URL.
	ConvertPage(page *Page) (string, error)
}

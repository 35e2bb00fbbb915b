package epaper

import (
	"net/url"
	"strings"
)

// ToAbsolute resolves reference against base.
//
// References that already carry an http or https scheme are returned as is.
// A reference that cannot be resolved against base is returned unchanged.
func ToAbsolute(reference, base string) string {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return ""
	}

	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ref
	}

	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !baseURL.IsAbs() {
		return reference
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return reference
	}

	return baseURL.ResolveReference(refURL).String()
}

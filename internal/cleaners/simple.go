package cleaners

import (
	"net/url"
	"strings"
)

// ResolveURL resolves a URL found in extracted markup (an image src, an
// anchor href) against the page's base URL, so callers never see a
// protocol-relative or page-relative reference. References that cannot be
// parsed or resolved come back unchanged.
func ResolveURL(rawURL, baseURL string) string {
	cleaned := strings.TrimSpace(rawURL)
	if cleaned == "" {
		return ""
	}

	ref, err := url.Parse(cleaned)
	if err != nil {
		return cleaned
	}
	if ref.IsAbs() {
		return cleaned
	}
	// Protocol-relative references get a scheme even without a base.
	if strings.HasPrefix(cleaned, "//") {
		return "https:" + cleaned
	}
	if baseURL == "" {
		return cleaned
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return cleaned
	}
	return base.ResolveReference(ref).String()
}

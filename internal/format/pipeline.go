// ABOUTME: The format pipeline — the sole place where HTML, Markdown, and
// ABOUTME: plain-text renderings of an extracted fragment are produced.
package format

import (
	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Apply renders fragment in the requested format. fallbackText, when
// non-nil, is used verbatim as the Text-format source instead of
// re-deriving it from fragment (the Selector scope supplies one built from
// its matched elements' own text fields; every other scope leaves it nil
// and lets Apply derive it from the fragment itself). Apply never errors:
// a broken fragment degrades to its best-effort text.
func Apply(fragment string, fallbackText *string, f core.Format) string {
	switch f {
	case core.FormatMarkdown:
		return toMarkdown(sanitizeHTML(fragment))
	case core.FormatText:
		if fallbackText != nil {
			return normalizeText(*fallbackText)
		}
		return normalizeText(bridge.TextOf(fragment))
	default:
		// FormatHTML is a pass-through: the fragment is returned exactly as
		// the engine (or the sandboxed function) produced it.
		return fragment
	}
}

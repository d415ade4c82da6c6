// ABOUTME: Selector scope resolution — include/exclude matching, dedup,
// ABOUTME: and fragment/text assembly for the Extraction Engine.
package engine

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
)

// selectorResult is a Selector scope's rendering: the joined fragment
// markup and the joined per-element text (used as the Text-format
// fallback so each matched element's own text is joined, rather than the
// fragment's markup being re-parsed and re-flattened).
type selectorResult struct {
	fragment string
	text     string
}

// applySelector runs applyGlobalRemovals, then matches every selector in
// include, de-duplicating elements that multiple include selectors both
// reach (preserving first-match order). For each surviving matched
// element, every exclude selector is then run *inside that element's
// subtree* and the matches removed from the live tree before the element
// is serialized.
func applySelector(b *bridge.DomBridge, include, exclude []string) selectorResult {
	doc := b.Document()
	applyGlobalRemovals(doc)

	seen := make(map[*html.Node]bool)
	var matched []*goquery.Selection

	for _, sel := range include {
		found := safeFindDoc(doc, sel)
		found.Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true
			matched = append(matched, s)
		})
	}

	var fragments, texts []string
	for _, s := range matched {
		for _, ex := range exclude {
			safeFindWithin(s, ex).Remove()
		}
		fragments = append(fragments, innerOf(s))
		texts = append(texts, bridge.BlockAwareText(s.Get(0)))
	}

	return selectorResult{
		fragment: strings.Join(fragments, "\n"),
		text:     strings.Join(texts, "\n"),
	}
}

// innerOf renders sel's innerHTML, or "" for an empty selection.
func innerOf(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	out, err := sel.Html()
	if err != nil {
		return ""
	}
	return out
}

// safeFindWithin runs sel.Find(selector) scoped to sel's subtree,
// absorbing an unparsable selector into an empty result the same way the
// bridge does. Exclude selectors may be caller-supplied and must never
// abort the extraction.
func safeFindWithin(sel *goquery.Selection, selector string) (result *goquery.Selection) {
	defer func() {
		if recover() != nil {
			result = sel.FindNodes()
		}
	}()
	return sel.Find(selector)
}

// ABOUTME: Main and Full scope resolution — the noise-stripping and
// ABOUTME: container-selection half of the Extraction Engine.
package engine

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
)

// fullFragment applies only the global removals and returns the whole
// document body's (or root's) innerHTML.
func fullFragment(b *bridge.DomBridge) string {
	doc := b.Document()
	applyGlobalRemovals(doc)
	return innerOf(rootSelection(doc))
}

// mainFragment applies the global and Main-only removals, then picks the
// first container selector whose block-aware text clears
// minContainerTextLen, falling back to body and finally the document root,
// and emits that container's innerHTML.
func mainFragment(b *bridge.DomBridge) string {
	doc := b.Document()
	applyGlobalRemovals(doc)
	applyMainNoiseRemovals(doc)

	for _, sel := range mainContainerSelectors {
		found := safeFindDoc(doc, sel)
		if found.Length() == 0 {
			continue
		}
		candidate := found.First()
		if len(strings.TrimSpace(bridge.BlockAwareText(candidate.Get(0)))) >= minContainerTextLen {
			return innerOf(candidate)
		}
	}
	return innerOf(rootSelection(doc))
}

// rootSelection returns the document's <body>, or the document root if
// there is none (e.g. a bare fragment with no html/body wrapper).
func rootSelection(doc *goquery.Document) *goquery.Selection {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// safeFindDoc mirrors bridge's safe-selector handling for the one entry
// point the engine needs directly against a whole document.
func safeFindDoc(doc *goquery.Document, selector string) (result *goquery.Selection) {
	defer func() {
		if recover() != nil {
			result = doc.FindNodes()
		}
	}()
	return doc.Find(selector)
}

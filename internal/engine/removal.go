package engine

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// globalRemovalSelector covers the removals common to the Main, Full and
// Selector scopes: script/style/noise elements. applyGlobalRemovals adds
// the data-URI image filter; <source>/<image> are deliberately left alone,
// only <img> gets the data: filter.
const globalRemovalSelector = "script, style, noscript, iframe, svg"

// mainNoiseSelector covers the additional Main-only removals: structural
// chrome, ARIA landmark roles, and common noise id/class names.
var mainNoiseSelector = strings.Join([]string{
	"nav", "header", "footer", "aside", "form",
	`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`, `[role="complementary"]`,
	"#nav", ".nav", "#navbar", ".navbar", "#header", ".header", "#footer", ".footer",
	"#sidebar", ".sidebar", "#menu", ".menu",
	"#advertisement", ".advertisement", "#ads", ".ads", "#ad", ".ad",
}, ", ")

// mainContainerSelectors are tried in order; the first whose post-removal
// text is at least minContainerTextLen characters wins.
var mainContainerSelectors = []string{
	"main", `[role="main"]`, "article", ".content", ".post", ".article", ".entry",
	"#content", "#main", ".main",
}

const minContainerTextLen = 100

// applyGlobalRemovals strips the always-removed elements for the Main,
// Full and Selector scopes, including data: <img> sources. Function scopes
// see the document without these removals.
func applyGlobalRemovals(doc *goquery.Document) {
	doc.Find(globalRemovalSelector).Remove()
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && strings.HasPrefix(src, "data:") {
			s.Remove()
		}
	})
}

// applyMainNoiseRemovals strips the Main-only noise selectors.
func applyMainNoiseRemovals(doc *goquery.Document) {
	doc.Find(mainNoiseSelector).Remove()
}

package bridge

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags is the set of elements whose closing boundary inserts a
// newline during block-aware text extraction.
var blockTags = map[string]bool{
	"p": true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "hr": true,
	"article": true, "section": true, "header": true, "footer": true,
	"blockquote": true, "pre": true,
	"ul": true, "ol": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"nav": true, "aside": true, "main": true,
	"figure": true, "figcaption": true, "address": true,
	"dd": true, "dt": true, "dl": true,
}

var (
	wsRunRe            = regexp.MustCompile(`\s+`)
	newlineRunRe       = regexp.MustCompile(`\n{2,}`)
	spaceRunRe         = regexp.MustCompile(` {2,}`)
	spaceNearNewlineRe = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// BlockAwareText computes the normalized text for the subtree rooted at n.
// Exported so the extraction engine can apply the same normalization when
// testing a candidate container's text length.
func BlockAwareText(n *html.Node) string {
	return blockAwareText(n)
}

// blockAwareText walks n's subtree in document order, collapsing text-node
// whitespace and inserting a newline at each block element's closing
// boundary (and at every <br>).
func blockAwareText(n *html.Node) string {
	var sb strings.Builder
	writeBlockText(n, &sb)
	return finalizeText(sb.String())
}

func writeBlockText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(wsRunRe.ReplaceAllString(c.Data, " "))
		case html.ElementNode:
			tag := strings.ToLower(c.Data)
			if tag == "br" {
				sb.WriteString("\n")
				continue
			}
			writeBlockText(c, sb)
			if blockTags[tag] {
				sb.WriteString("\n")
			}
		}
	}
}

// TextOf parses an arbitrary HTML (or plain-text) fragment and returns its
// block-aware text. Used by the format pipeline to derive a Text rendering
// from a fragment when no caller-supplied fallback is available.
func TextOf(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil || doc.Selection == nil {
		return finalizeText(wsRunRe.ReplaceAllString(fragment, " "))
	}
	root := doc.Selection
	if body := doc.Find("body"); body.Length() > 0 {
		root = body
	}
	if root.Length() == 0 {
		return ""
	}
	return blockAwareText(root.Get(0))
}

// finalizeText post-processes accumulated text: collapse newline runs,
// collapse space runs, drop whitespace adjacent to newlines, trim.
func finalizeText(s string) string {
	s = spaceNearNewlineRe.ReplaceAllString(s, "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

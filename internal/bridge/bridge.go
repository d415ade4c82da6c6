// ABOUTME: Host-side DOM bridge — the single authoritative HTML parse and
// ABOUTME: the query/traversal surface the extraction engine and sandbox consult.
package bridge

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// DomBridge owns one parsed HTML tree for the lifetime of a single
// extraction request. It is never shared across requests: any
// multiplexing of a bridge is a programming error in the caller, not
// something the bridge guards against.
type DomBridge struct {
	doc    *goquery.Document
	ids    map[*html.Node]core.NodeID
	nodes  []*html.Node // nodes[id-1] is the element with that NodeID
	nextID core.NodeID
}

// New parses html into a DomBridge. Parsing never fails: malformed input
// is salvaged leniently by the underlying HTML5 tree builder, and even
// empty input yields a valid (empty) bridge.
func New(htmlStr string) *DomBridge {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		// goquery/x-net's parser does not actually fail on malformed
		// HTML; this only guards the reader allocation path.
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &DomBridge{
		doc: doc,
		ids: make(map[*html.Node]core.NodeID),
	}
}

// Document exposes the underlying goquery document for callers (the
// extraction engine) that need whole-tree operations the bridge doesn't
// wrap directly, such as removing nodes.
func (b *DomBridge) Document() *goquery.Document { return b.doc }

// idFor returns the stable NodeID for n, assigning a fresh one (monotonic
// from 1) the first time n is seen.
func (b *DomBridge) idFor(n *html.Node) core.NodeID {
	if id, ok := b.ids[n]; ok {
		return id
	}
	b.nextID++
	id := b.nextID
	b.ids[n] = id
	b.nodes = append(b.nodes, n)
	return id
}

// nodeByID resolves a previously issued NodeID back to its live element.
func (b *DomBridge) nodeByID(id core.NodeID) (*html.Node, bool) {
	if id < 1 || int(id) > len(b.nodes) {
		return nil, false
	}
	return b.nodes[id-1], true
}

// selOf wraps a single node in a goquery.Selection bound to this bridge's
// document. FindNodes is goquery's public path to a selection over
// arbitrary nodes of an existing document.
func (b *DomBridge) selOf(n *html.Node) *goquery.Selection {
	return b.doc.FindNodes(n)
}

// selByID resolves id to a live, single-node Selection.
func (b *DomBridge) selByID(id core.NodeID) (*goquery.Selection, bool) {
	n, ok := b.nodeByID(id)
	if !ok {
		return nil, false
	}
	return b.selOf(n), true
}

// empty returns a zero-length Selection bound to this bridge's document.
func (b *DomBridge) empty() *goquery.Selection {
	return b.doc.FindNodes()
}

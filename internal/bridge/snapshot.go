package bridge

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Snapshot builds a core.NodeSnapshot for the first node in sel, assigning
// it a NodeID if one hasn't been issued yet. Calling Snapshot again for the
// same element always returns the same ID.
func (b *DomBridge) Snapshot(sel *goquery.Selection) core.NodeSnapshot {
	node := sel.Get(0)
	id := b.idFor(node)

	innerHTML, _ := sel.Html()
	outerHTML, err := goquery.OuterHtml(sel)
	if err != nil {
		outerHTML = ""
	}

	attrs := make(map[string]string, len(node.Attr))
	for _, a := range node.Attr {
		attrs[a.Key] = a.Val
	}

	dataAttrs := make(map[string]string)
	for k, v := range attrs {
		if strings.HasPrefix(k, "data-") {
			dataAttrs[strings.TrimPrefix(k, "data-")] = v
		}
	}

	var classes []string
	if cls, ok := attrs["class"]; ok {
		for _, c := range strings.Fields(cls) {
			classes = append(classes, c)
		}
	}

	return core.NodeSnapshot{
		ID:        id,
		Tag:       goquery.NodeName(sel),
		Text:      blockAwareText(node),
		HTML:      innerHTML,
		OuterHTML: outerHTML,
		Attrs:     attrs,
		DataAttrs: dataAttrs,
		Classes:   classes,
	}
}

// snapshotAll builds an ordered list of snapshots, one per node in sel, in
// document order (the order goquery already iterates selections in).
func (b *DomBridge) snapshotAll(sel *goquery.Selection) []core.NodeSnapshot {
	out := make([]core.NodeSnapshot, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, b.Snapshot(s))
	})
	return out
}

package bridge

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// Query returns the first element matching selector, in document order.
// An invalid selector is absorbed as "no match" rather than an error.
func (b *DomBridge) Query(selector string) (core.NodeSnapshot, bool) {
	found := safeFind(b.doc.Selection, selector, b.empty())
	if found.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(found.First()), true
}

// QueryAll returns every element matching selector, in document order.
func (b *DomBridge) QueryAll(selector string) []core.NodeSnapshot {
	found := safeFind(b.doc.Selection, selector, b.empty())
	return b.snapshotAll(found)
}

// ChildQuery scopes Query to the subtree of the element identified by id.
func (b *DomBridge) ChildQuery(id core.NodeID, selector string) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	found := safeFind(sel, selector, b.empty())
	if found.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(found.First()), true
}

// ChildQueryAll scopes QueryAll to the subtree of the element identified by id.
func (b *DomBridge) ChildQueryAll(id core.NodeID, selector string) []core.NodeSnapshot {
	sel, ok := b.selByID(id)
	if !ok {
		return nil
	}
	found := safeFind(sel, selector, b.empty())
	return b.snapshotAll(found)
}

// Closest returns the nearest ancestor (inclusive of id's own element)
// matching selector.
func (b *DomBridge) Closest(id core.NodeID, selector string) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	found := safeClosest(sel, selector, b.empty())
	if found.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(found), true
}

// Parent returns id's parent element, optionally filtered by selector. An
// empty selector means "no filter".
func (b *DomBridge) Parent(id core.NodeID, selector string) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	var parent *goquery.Selection
	if selector == "" {
		parent = sel.Parent()
	} else {
		parent = safeParentFiltered(sel, selector, b.empty())
	}
	if parent.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(parent), true
}

// Children returns id's direct element children, in document order.
func (b *DomBridge) Children(id core.NodeID) []core.NodeSnapshot {
	sel, ok := b.selByID(id)
	if !ok {
		return nil
	}
	return b.snapshotAll(sel.Children())
}

// FirstChild returns id's first element child.
func (b *DomBridge) FirstChild(id core.NodeID) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	first := sel.Children().First()
	if first.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(first), true
}

// LastChild returns id's last element child.
func (b *DomBridge) LastChild(id core.NodeID) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	last := sel.Children().Last()
	if last.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(last), true
}

// NextSibling returns id's next element sibling, skipping text nodes.
func (b *DomBridge) NextSibling(id core.NodeID) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	next := sel.Next()
	if next.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(next), true
}

// PrevSibling returns id's previous element sibling, skipping text nodes.
func (b *DomBridge) PrevSibling(id core.NodeID) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	prev := sel.Prev()
	if prev.Length() == 0 {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(prev), true
}

// SnapshotByID re-snapshots a previously seen element by its id, for
// callers (the extraction engine) that only carry an id around.
func (b *DomBridge) SnapshotByID(id core.NodeID) (core.NodeSnapshot, bool) {
	sel, ok := b.selByID(id)
	if !ok {
		return core.NodeSnapshot{}, false
	}
	return b.Snapshot(sel), true
}

// Remove deletes every element matching selector from the tree. Used by
// the extraction engine's noise-removal passes, never by the sandbox.
func (b *DomBridge) Remove(selector string) {
	safeFind(b.doc.Selection, selector, b.empty()).Remove()
}

// RemoveMatching removes elements for which match returns true.
func (b *DomBridge) RemoveMatching(selector string, match func(core.NodeSnapshot) bool) {
	found := safeFind(b.doc.Selection, selector, b.empty())
	var toRemove []*goquery.Selection
	found.Each(func(_ int, s *goquery.Selection) {
		if match(b.Snapshot(s)) {
			toRemove = append(toRemove, s)
		}
	})
	for _, s := range toRemove {
		s.Remove()
	}
}

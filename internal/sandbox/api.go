// ABOUTME: The JS-visible "api" object and its Node proxies — the only
// ABOUTME: surface a Function scope's code can touch.
package sandbox

import (
	"github.com/dop251/goja"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// newAPI builds the read-only api object handed to Function scope code:
// the raw html and url, plus the document-wide $/$$ query surface.
func newAPI(vm *goja.Runtime, b *bridge.DomBridge, htmlStr, url string) *goja.Object {
	query := func(selector string) goja.Value {
		ns, ok := b.Query(selector)
		if !ok {
			return goja.Null()
		}
		return nodeProxy(vm, b, ns)
	}
	queryAll := func(selector string) goja.Value {
		return nodeProxies(vm, b, b.QueryAll(selector))
	}

	obj := vm.NewObject()
	_ = obj.Set("html", htmlStr)
	_ = obj.Set("url", url)
	_ = obj.Set("$", query)
	_ = obj.Set("querySelector", query)
	_ = obj.Set("$$", queryAll)
	_ = obj.Set("querySelectorAll", queryAll)
	return obj
}

// nodeProxy renders a NodeSnapshot as the JS-visible object api.$ and a
// proxy's own traversal methods return: the snapshot's fields, the scoped
// query/attribute methods, and the traversal neighbors as lazy accessor
// properties. Laziness matters: an eager children/nextSibling expansion
// would materialize neighbors of neighbors, walking arbitrarily far
// across the document from a single query.
func nodeProxy(vm *goja.Runtime, b *bridge.DomBridge, ns core.NodeSnapshot) *goja.Object {
	classes := ns.Classes
	if classes == nil {
		classes = []string{}
	}
	id := ns.ID

	obj := vm.NewObject()
	_ = obj.Set("id", uint64(id))
	_ = obj.Set("tag", ns.Tag)
	_ = obj.Set("text", ns.Text)
	_ = obj.Set("html", ns.HTML)
	_ = obj.Set("outerHtml", ns.OuterHTML)
	_ = obj.Set("attrs", ns.Attrs)
	_ = obj.Set("dataAttrs", ns.DataAttrs)
	_ = obj.Set("classes", classes)

	_ = obj.Set("attr", func(name string) goja.Value {
		if v, ok := ns.Attrs[name]; ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})
	_ = obj.Set("dataAttr", func(name string) goja.Value {
		if v, ok := ns.DataAttrs[name]; ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})
	_ = obj.Set("hasClass", func(name string) bool {
		for _, c := range classes {
			if c == name {
				return true
			}
		}
		return false
	})

	child := func(selector string) goja.Value {
		cns, ok := b.ChildQuery(id, selector)
		if !ok {
			return goja.Null()
		}
		return nodeProxy(vm, b, cns)
	}
	childAll := func(selector string) goja.Value {
		return nodeProxies(vm, b, b.ChildQueryAll(id, selector))
	}
	_ = obj.Set("$", child)
	_ = obj.Set("querySelector", child)
	_ = obj.Set("$$", childAll)
	_ = obj.Set("querySelectorAll", childAll)
	_ = obj.Set("closest", func(selector string) goja.Value {
		cns, ok := b.Closest(id, selector)
		if !ok {
			return goja.Null()
		}
		return nodeProxy(vm, b, cns)
	})
	_ = obj.Set("parent", func(call goja.FunctionCall) goja.Value {
		selector := ""
		if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) && !goja.IsNull(call.Arguments[0]) {
			selector = call.Arguments[0].String()
		}
		pns, ok := b.Parent(id, selector)
		if !ok {
			return goja.Null()
		}
		return nodeProxy(vm, b, pns)
	})

	lazyNeighbor(vm, obj, "children", func() goja.Value {
		return nodeProxies(vm, b, b.Children(id))
	})
	lazyNeighbor(vm, obj, "firstChild", func() goja.Value {
		ns, ok := b.FirstChild(id)
		return maybeProxy(vm, b, ns, ok)
	})
	lazyNeighbor(vm, obj, "lastChild", func() goja.Value {
		ns, ok := b.LastChild(id)
		return maybeProxy(vm, b, ns, ok)
	})
	lazyNeighbor(vm, obj, "nextSibling", func() goja.Value {
		ns, ok := b.NextSibling(id)
		return maybeProxy(vm, b, ns, ok)
	})
	lazyNeighbor(vm, obj, "prevSibling", func() goja.Value {
		ns, ok := b.PrevSibling(id)
		return maybeProxy(vm, b, ns, ok)
	})

	return obj
}

// lazyNeighbor installs name as a read-only accessor property whose value
// is computed from the bridge on first (and every) access.
func lazyNeighbor(vm *goja.Runtime, obj *goja.Object, name string, get func() goja.Value) {
	getter := vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	_ = obj.DefineAccessorProperty(name, getter, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

func maybeProxy(vm *goja.Runtime, b *bridge.DomBridge, ns core.NodeSnapshot, ok bool) goja.Value {
	if !ok {
		return goja.Null()
	}
	return nodeProxy(vm, b, ns)
}

func nodeProxies(vm *goja.Runtime, b *bridge.DomBridge, list []core.NodeSnapshot) goja.Value {
	items := make([]interface{}, 0, len(list))
	for _, ns := range list {
		items = append(items, nodeProxy(vm, b, ns))
	}
	return vm.NewArray(items...)
}

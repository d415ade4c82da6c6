package scopeforge

import (
	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/engine"
)

// The data model lives in internal/core so every internal package shares
// one vocabulary; these aliases are the public spelling of that
// vocabulary, so callers never import an internal path.
type (
	Scope            = core.Scope
	ScopeKind        = core.ScopeKind
	Format           = core.Format
	ScopeResolution  = core.ScopeResolution
	ExtractionResult = core.ExtractionResult
	PageMeta         = core.PageMeta
	OpenGraph        = core.OpenGraph
	Hreflang         = core.Hreflang
	NodeID           = core.NodeID
	NodeSnapshot     = core.NodeSnapshot
	HandlerLookup    = core.HandlerLookup
)

const (
	ScopeMain     = core.ScopeMain
	ScopeFull     = core.ScopeFull
	ScopeAuto     = core.ScopeAuto
	ScopeSelector = core.ScopeSelector
	ScopeFunction = core.ScopeFunction
	ScopeHandler  = core.ScopeHandler

	FormatHTML     = core.FormatHTML
	FormatMarkdown = core.FormatMarkdown
	FormatText     = core.FormatText
)

// MainScope returns the "main content" scope: noise stripped, the page's
// primary container selected heuristically.
func MainScope() Scope { return core.Main() }

// FullScope returns the whole-body scope with only minimal cleanup.
func FullScope() Scope { return core.Full() }

// AutoScope returns the scope that defers to a HandlerLookup and falls
// back to MainScope.
func AutoScope() Scope { return core.Auto() }

// SelectorScope builds a CSS include/exclude scope.
func SelectorScope(include, exclude []string) Scope {
	return core.NewSelectorScope(include, exclude)
}

// FunctionScope builds a sandboxed-JS scope. A timeoutMs of 0 selects the
// default timeout.
func FunctionScope(code string, timeoutMs int) Scope {
	return core.NewFunctionScope(code, timeoutMs)
}

// HandlerScope builds a scope resolved by name through the client's
// HandlerLookup.
func HandlerScope(id string) Scope { return core.NewHandlerScope(id) }

// ParseFormat maps "html"/"markdown"/"text" (and their short spellings)
// to a Format.
func ParseFormat(s string) (Format, error) { return core.ParseFormat(s) }

// ParseScope decodes a JSON wire-format scope and validates it.
func ParseScope(data []byte) (Scope, error) { return engine.ParseScope(data) }

// ParseScopeArg parses a CLI-style scope argument: a literal
// main|full|auto, a "selector:" csv (paired with an optional exclude
// csv), or a JSON object.
func ParseScopeArg(arg, excludeArg string) (Scope, error) {
	return engine.ParseScopeArg(arg, excludeArg)
}

// ScopeToString renders a Scope to its canonical wire JSON, for logging.
func ScopeToString(s Scope) string { return engine.ScopeToString(s) }

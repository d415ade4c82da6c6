// ABOUTME: Extraction Engine — top-level scope dispatch producing an
// ABOUTME: ExtractionResult and the ScopeResolution that explains it.
package engine

import (
	"fmt"
	"strings"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
	"github.com/ashgrove-dev/scopeforge/internal/format"
)

// FunctionRunner executes a Function scope's code against a bridge. The
// engine never implements this itself; internal/sandbox supplies the
// concrete implementation so the engine stays free of the goja
// dependency.
type FunctionRunner interface {
	Run(b *bridge.DomBridge, htmlStr, url, code string, timeoutMs int) (string, error)
}

// Options carries the external collaborators an extraction may need:
// a HandlerLookup for Auto/Handler resolution, a FunctionRunner for
// Function scopes, and the source URL those collaborators key on.
type Options struct {
	Handler core.HandlerLookup
	Runner  FunctionRunner
	URL     string
}

// Extract resolves scope against htmlStr and renders the result in
// format. The returned ScopeResolution always reflects the scope that was
// actually used, which may differ from the one requested when Auto
// resolution took place.
func Extract(htmlStr string, scope core.Scope, f core.Format, opts Options) (core.ExtractionResult, error) {
	// Validate returns a typed ExtractError (an out-of-range timeout is a
	// function-scope failure, not malformed input), so it passes through
	// unwrapped.
	if err := scope.Validate(); err != nil {
		return core.ExtractionResult{}, err
	}

	b := bridge.New(htmlStr)

	used := scope
	resolved := false
	handlerID := ""

	if scope.Kind == core.ScopeAuto {
		// Auto always resolves to something else, even when that something
		// is the Main fallback because no handler matched.
		used = core.Main()
		resolved = true
		if opts.Handler != nil {
			if s, ok := opts.Handler.LookupHandler(opts.URL, ""); ok && s != nil {
				used = *s
			}
		}
	}

	if used.Kind == core.ScopeHandler {
		if opts.Handler == nil {
			return core.ExtractionResult{}, core.NewHandlerUnavailable("Extract", fmt.Errorf("no handler lookup configured"))
		}
		s, ok := opts.Handler.LookupHandler(opts.URL, used.HandlerID)
		if !ok || s == nil {
			return core.ExtractionResult{}, core.NewHandlerUnavailable("Extract", fmt.Errorf("handler %q not found", used.HandlerID))
		}
		handlerID = used.HandlerID
		used = *s
	}

	fragment, fallbackText, err := dispatch(b, used, htmlStr, opts)
	if err != nil {
		return core.ExtractionResult{}, err
	}

	resolution := core.ScopeResolution{
		Requested: scope,
		Used:      used,
		Resolved:  resolved,
		HandlerID: handlerID,
	}

	content := fragment
	if used.Kind != core.ScopeFunction || looksLikeHTML(fragment) {
		content = format.Apply(fragment, fallbackText, f)
	}

	return core.ExtractionResult{
		Content:    content,
		Resolution: resolution,
	}, nil
}

// looksLikeHTML is the Function scope's cheap heuristic for whether its
// returned string should enter the Format Pipeline at all: a string
// lacking either "<" or ">" is passed through untouched rather than
// sanitized, markdown-converted, or text-normalized.
func looksLikeHTML(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// dispatch renders the fragment (and, for Selector scopes, the
// per-element text fallback) for a fully-resolved, non-Auto, non-Handler
// scope.
func dispatch(b *bridge.DomBridge, scope core.Scope, htmlStr string, opts Options) (fragment string, fallbackText *string, err error) {
	switch scope.Kind {
	case core.ScopeMain:
		return mainFragment(b), nil, nil
	case core.ScopeFull:
		return fullFragment(b), nil, nil
	case core.ScopeSelector:
		res := applySelector(b, scope.Include, scope.Exclude)
		return res.fragment, &res.text, nil
	case core.ScopeFunction:
		if opts.Runner == nil {
			return "", nil, core.NewFunctionScopeError("Extract", fmt.Errorf("no function runner configured"))
		}
		out, rerr := opts.Runner.Run(b, htmlStr, opts.URL, scope.Code, scope.TimeoutMs)
		if rerr != nil {
			return "", nil, core.NewFunctionScopeError("Extract", rerr)
		}
		return out, nil, nil
	default:
		return "", nil, core.NewInvalidScope("Extract", fmt.Errorf("unresolved scope kind %s", scope.Kind))
	}
}

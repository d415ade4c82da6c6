// Package core holds the data model shared by the bridge, engine, format,
// sandbox, and meta packages: the vocabulary every other package speaks,
// with no logic of its own.
package core

import (
	"encoding/json"
	"fmt"
)

// ScopeKind tags the variant held by a Scope.
type ScopeKind int

const (
	ScopeMain ScopeKind = iota
	ScopeFull
	ScopeAuto
	ScopeSelector
	ScopeFunction
	ScopeHandler
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeMain:
		return "main"
	case ScopeFull:
		return "full"
	case ScopeAuto:
		return "auto"
	case ScopeSelector:
		return "selector"
	case ScopeFunction:
		return "function"
	case ScopeHandler:
		return "handler"
	default:
		return "unknown"
	}
}

// DefaultFunctionTimeoutMs is used when a Function scope omits a timeout.
const DefaultFunctionTimeoutMs = 5000

// MinFunctionTimeoutMs and MaxFunctionTimeoutMs bound Function.TimeoutMs.
const (
	MinFunctionTimeoutMs = 1
	MaxFunctionTimeoutMs = 60000
)

// Scope is a tagged variant describing which region of a document to
// extract. Only the fields relevant to Kind are meaningful.
type Scope struct {
	Kind ScopeKind

	// Selector fields.
	Include []string
	Exclude []string

	// Function fields.
	Code      string
	TimeoutMs int

	// Handler fields.
	HandlerID string
}

// Main returns a Scope with Kind ScopeMain.
func Main() Scope { return Scope{Kind: ScopeMain} }

// Full returns a Scope with Kind ScopeFull.
func Full() Scope { return Scope{Kind: ScopeFull} }

// Auto returns a Scope with Kind ScopeAuto.
func Auto() Scope { return Scope{Kind: ScopeAuto} }

// NewSelectorScope builds a Selector scope from include and exclude
// selector lists.
func NewSelectorScope(include, exclude []string) Scope {
	return Scope{Kind: ScopeSelector, Include: include, Exclude: exclude}
}

// NewFunctionScope builds a Function scope, applying the default timeout
// when timeoutMs is zero.
func NewFunctionScope(code string, timeoutMs int) Scope {
	if timeoutMs == 0 {
		timeoutMs = DefaultFunctionTimeoutMs
	}
	return Scope{Kind: ScopeFunction, Code: code, TimeoutMs: timeoutMs}
}

// NewHandlerScope builds a Handler scope.
func NewHandlerScope(id string) Scope {
	return Scope{Kind: ScopeHandler, HandlerID: id}
}

// Validate enforces the per-variant invariants from the data model: a
// non-empty Selector.Include, a non-empty Function.Code, and a
// Function.TimeoutMs within [MinFunctionTimeoutMs, MaxFunctionTimeoutMs].
// The returned error is always an *ExtractError; an out-of-range timeout
// is a function-scope failure, while the other violations are malformed
// scope input.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeSelector:
		if len(s.Include) == 0 {
			return NewInvalidScope("Validate", fmt.Errorf("selector scope requires a non-empty include list"))
		}
	case ScopeFunction:
		if s.Code == "" {
			return NewInvalidScope("Validate", fmt.Errorf("function scope requires non-empty code"))
		}
		if s.TimeoutMs < MinFunctionTimeoutMs || s.TimeoutMs > MaxFunctionTimeoutMs {
			return NewFunctionScopeError("Validate", fmt.Errorf("function scope timeout %d out of range [%d, %d]", s.TimeoutMs, MinFunctionTimeoutMs, MaxFunctionTimeoutMs))
		}
	case ScopeHandler:
		if s.HandlerID == "" {
			return NewInvalidScope("Validate", fmt.Errorf("handler scope requires a non-empty id"))
		}
	}
	return nil
}

// ScopeResolution records how a requested Scope was actually applied.
type ScopeResolution struct {
	Requested Scope  `json:"requested"`
	Used      Scope  `json:"used"`
	Resolved  bool   `json:"resolved"`
	HandlerID string `json:"handlerId,omitempty"`
}

// Format is the textual output shape of an extraction.
type Format int

const (
	FormatHTML Format = iota
	FormatMarkdown
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalJSON renders a Format as its wire string spelling.
func (f Format) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON parses a Format from its wire string spelling.
func (f *Format) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat maps the CLI/wire string spelling to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "html", "":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return FormatHTML, fmt.Errorf("unknown format %q", s)
	}
}

// ExtractionResult is the output of a scoped extraction.
type ExtractionResult struct {
	Content    string          `json:"content"`
	Resolution ScopeResolution `json:"resolution"`
}

// HandlerLookup resolves Auto/Handler scopes to a concrete Scope. The core
// never implements this itself; callers supply it, and its absence
// degrades Auto to Main and fails Handler with ErrHandlerUnavailable.
type HandlerLookup interface {
	LookupHandler(url string, handlerID string) (*Scope, bool)
}

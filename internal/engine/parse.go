// ABOUTME: Scope wire format — JSON parsing and stringification for the
// ABOUTME: scope values carried across the CLI, HTTP, and API boundaries.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// ParseScope decodes data as a wire-format scope and validates the
// resulting Scope. The decoding itself lives on
// core.Scope's UnmarshalJSON so the same round-trip rules apply whether a
// Scope arrives via ParseScope, an HTTP body, or the cache.
func ParseScope(data []byte) (core.Scope, error) {
	var s core.Scope
	if err := json.Unmarshal(data, &s); err != nil {
		// Validation failures surface pre-typed (an out-of-range timeout
		// is a function-scope error, not malformed input); only raw JSON
		// problems need classifying here.
		var ee *core.ExtractError
		if errors.As(err, &ee) {
			return core.Scope{}, ee
		}
		return core.Scope{}, core.NewInvalidScope("ParseScope", err)
	}
	return s, nil
}

// ScopeToString renders s back to its canonical wire JSON, for logging and
// the HTTP server's cache keys.
func ScopeToString(s core.Scope) string {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf(`{"type":%q}`, s.Kind.String())
	}
	return string(b)
}

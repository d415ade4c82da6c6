// ABOUTME: Scope Resolver — translates CLI-style scope arguments (plain
// ABOUTME: keyword, "selector:" csv, or JSON) into a validated Scope.
package engine

import (
	"fmt"
	"strings"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

// ParseScopeArg parses the reference CLI's -s/--scope argument, combined
// with an optional out-of-band -x/--exclude csv list that only applies to
// the "selector:" form. Four cases are recognized:
//
//   - a literal "main"|"full"|"auto"
//   - a "selector:" prefix followed by a comma-separated include list
//   - a "{"-prefixed JSON object
//   - anything else is rejected as InvalidScope
func ParseScopeArg(arg, excludeArg string) (core.Scope, error) {
	trimmed := strings.TrimSpace(arg)

	switch trimmed {
	case "main", "":
		return core.Main(), nil
	case "full":
		return core.Full(), nil
	case "auto":
		return core.Auto(), nil
	}

	if strings.HasPrefix(trimmed, "selector:") {
		include := splitCSV(strings.TrimPrefix(trimmed, "selector:"))
		if len(include) == 0 {
			return core.Scope{}, core.NewInvalidScope("ParseScopeArg", fmt.Errorf("selector: scope requires a non-empty include list"))
		}
		exclude := splitCSV(excludeArg)
		return core.NewSelectorScope(include, exclude), nil
	}

	if strings.HasPrefix(trimmed, "{") {
		return ParseScope([]byte(trimmed))
	}

	return core.Scope{}, core.NewInvalidScope("ParseScopeArg", fmt.Errorf("unrecognized scope argument %q", trimmed))
}

// splitCSV trims and drops empty entries from a comma-separated list. A
// blank input yields nil, not a one-element list of "".
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

package sandbox

import (
	"fmt"
	"strings"
)

// deniedReferences names host capabilities the sandbox never grants.
// Function scope code is rejected outright if it mentions any of these,
// rather than relying on the VM alone to have nothing to call. This is
// defense-in-depth; the VM's empty global scope is the actual boundary.
var deniedReferences = []string{
	"document.",
	"fetch(",
	"await fetch",
	"XMLHttpRequest",
	"require(",
	"import(",
	"process.",
	"globalThis",
}

// validate rejects code that isn't a bare function expression, or that
// references a denied host capability by name.
func validate(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return fmt.Errorf("function scope code is empty")
	}
	if !looksLikeFunctionExpr(trimmed) {
		return fmt.Errorf("function scope code must be a function expression, e.g. (api, url) => ... or function(api, url) { ... }")
	}
	for _, denied := range deniedReferences {
		if strings.Contains(trimmed, denied) {
			return fmt.Errorf("function scope code references %q; use the api object (api.$, api.$$, api.html) instead", denied)
		}
	}
	return nil
}

// looksLikeFunctionExpr accepts code beginning with "function" or
// "(function", or beginning with "(" and containing "=>" (an arrow
// function's parameter list); anything else is rejected before it reaches
// the VM.
func looksLikeFunctionExpr(s string) bool {
	if strings.HasPrefix(s, "function") || strings.HasPrefix(s, "(function") {
		return true
	}
	return strings.HasPrefix(s, "(") && strings.Contains(s, "=>")
}

// ABOUTME: The Function scope's execution boundary — a timeboxed goja VM
// ABOUTME: with a single host capability, the api object.
package sandbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
)

// sandboxMaxCallStackSize bounds recursion depth inside a Function scope
// invocation. It is not a heap cap: memory allocated by a loop before the
// wall-clock interrupt lands is not limited.
const sandboxMaxCallStackSize = 512

// Runner executes Function scope code against a DomBridge. It implements
// engine.FunctionRunner without importing the engine package, keeping the
// sandbox's goja dependency out of the engine's import graph.
type Runner struct{}

// Run validates code, evaluates it as `(code)(api, url)` inside a fresh
// goja runtime bound only to the api capability object, and renders the
// return value to a string. It never panics: a VM panic is recovered and
// surfaced as an error, and a timeout interrupts the VM rather than
// leaking a goroutine.
func (Runner) Run(b *bridge.DomBridge, htmlStr, url, code string, timeoutMs int) (result string, err error) {
	if verr := validate(code); verr != nil {
		return "", verr
	}

	vm := goja.New()
	// goja has no general heap cap; a bounded call stack stands in for one,
	// since unbounded recursion is the dominant way sandboxed code would
	// exhaust memory within the timeout window.
	vm.SetMaxCallStackSize(sandboxMaxCallStackSize)
	_ = vm.Set("api", newAPI(vm, b, htmlStr, url))
	_ = vm.Set("__url", url)

	timer := time.AfterFunc(time.Duration(timeoutMs)*time.Millisecond, func() {
		vm.Interrupt("function scope exceeded its time budget")
	})
	defer timer.Stop()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("function scope panicked: %v", p)
		}
	}()

	v, rerr := vm.RunString(fmt.Sprintf("(%s)(api, __url)", code))
	if rerr != nil {
		if _, ok := rerr.(*goja.InterruptedError); ok {
			return "", fmt.Errorf("function scope timed out after %dms", timeoutMs)
		}
		return "", rerr
	}

	return valueToString(v), nil
}

// valueToString renders a goja return value: strings pass through,
// null/undefined become "", everything else is rendered as
// pretty-printed JSON.
func valueToString(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	exported := v.Export()
	if s, ok := exported.(string); ok {
		return s
	}
	b, merr := json.MarshalIndent(exported, "", "  ")
	if merr != nil {
		return fmt.Sprintf("%v", exported)
	}
	return string(b)
}

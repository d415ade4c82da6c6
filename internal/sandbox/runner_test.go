package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
)

func TestRunner_ReturnsString(t *testing.T) {
	html := `<html><body><h1 id="t">Hello</h1></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => api.$("#t").text`, 1000)
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestRunner_ReturnsObjectAsJSON(t *testing.T) {
	html := `<html><body><h1 id="t">Hello</h1></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => ({ title: api.$("#t").text })`, 1000)
	require.NoError(t, err)
	assert.Contains(t, out, `"title"`)
	assert.Contains(t, out, "Hello")
}

func TestRunner_NullReturnsEmptyString(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => api.$("#missing")`, 1000)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRunner_Timeout(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	_, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => { while(true) {} }`, 50)
	require.Error(t, err)
}

func TestRunner_ThrownExceptionIsError(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	_, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => { throw new Error("boom") }`, 1000)
	require.Error(t, err)
}

func TestRunner_RejectsNonFunctionCode(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	_, err := (Runner{}).Run(b, html, "https://example.com", `document.title`, 1000)
	require.Error(t, err)
}

func TestRunner_RejectsDocumentReference(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	_, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => document.title`, 1000)
	require.Error(t, err)
}

func TestRunner_RejectsFetchReference(t *testing.T) {
	html := `<html><body></body></html>`
	b := bridge.New(html)
	_, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => fetch("https://evil.example")`, 1000)
	require.Error(t, err)
}

func TestRunner_TraversalSurface(t *testing.T) {
	html := `<html><body><ul><li id="a">A</li><li id="b">B</li></ul></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => {
		var a = api.$("#a");
		return a.nextSibling.text;
	}`, 1000)
	require.NoError(t, err)
	assert.Equal(t, "B", out)
}

func TestRunner_HTMLAndURLAreExposed(t *testing.T) {
	html := `<html><body><p>hi</p></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com/page", `(api, url) => url`, 1000)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", out)
}

func TestRunner_QuerySelectorAllIsDocumentOrder(t *testing.T) {
	html := `<html><body><li id="a">A</li><li id="b">B</li><li id="c">C</li></body></html>`
	b := bridge.New(html)
	out, err := (Runner{}).Run(b, html, "https://example.com", `(api, url) => api.$$("li").map(n => n.text).join(",")`, 1000)
	require.NoError(t, err)
	assert.Equal(t, "A,B,C", out)
}

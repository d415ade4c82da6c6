package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

func TestExtract_MainMarkdown_HelloWorld(t *testing.T) {
	html := `<html><body>
		<nav>site nav</nav>
		<article><h1>Hello</h1><p>World</p></article>
		<footer>copyright</footer>
	</body></html>`

	res, err := Extract(html, core.Main(), core.FormatMarkdown, Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Content, "# Hello")
	assert.Contains(t, res.Content, "World")
	assert.NotContains(t, res.Content, "site nav")
	assert.NotContains(t, res.Content, "copyright")
	assert.Equal(t, core.ScopeMain, res.Resolution.Used.Kind)
	assert.False(t, res.Resolution.Resolved)
}

func TestExtract_Selector_WithExclude(t *testing.T) {
	html := `<html><body>
		<div class="post"><p>keep me</p><div class="ad">drop me</div></div>
	</body></html>`

	scope := core.NewSelectorScope([]string{".post"}, []string{".ad"})
	res, err := Extract(html, scope, core.FormatText, Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Content, "keep me")
	assert.NotContains(t, res.Content, "drop me")
}

func TestExtract_Selector_DedupesOverlappingIncludes(t *testing.T) {
	html := `<html><body><div id="a" class="post"><p>x</p></div></body></html>`
	scope := core.NewSelectorScope([]string{"#a", ".post"}, nil)

	res, err := Extract(html, scope, core.FormatHTML, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(res.Content, "<p>x</p>"))
}

func TestExtract_FullVsMain(t *testing.T) {
	html := `<html><body>
		<nav>site nav</nav>
		<article><p>body text</p></article>
	</body></html>`

	full, err := Extract(html, core.Full(), core.FormatHTML, Options{})
	require.NoError(t, err)
	assert.Contains(t, full.Content, "site nav")

	main, err := Extract(html, core.Main(), core.FormatHTML, Options{})
	require.NoError(t, err)
	assert.NotContains(t, main.Content, "site nav")
}

func TestExtract_Auto_NoHandlerFallsBackToMain(t *testing.T) {
	html := `<html><body><article><p>hi</p></article></body></html>`

	res, err := Extract(html, core.Auto(), core.FormatHTML, Options{})
	require.NoError(t, err)
	assert.Equal(t, core.ScopeMain, res.Resolution.Used.Kind)
	assert.True(t, res.Resolution.Resolved)
	assert.Equal(t, core.ScopeAuto, res.Resolution.Requested.Kind)
}

type stubHandlerLookup struct {
	scope *core.Scope
	ok    bool
}

func (s stubHandlerLookup) LookupHandler(url, handlerID string) (*core.Scope, bool) {
	return s.scope, s.ok
}

func TestExtract_Auto_ResolvesViaHandler(t *testing.T) {
	html := `<html><body><div class="special"><p>special text</p></div><article><p>generic</p></article></body></html>`
	special := core.NewSelectorScope([]string{".special"}, nil)

	res, err := Extract(html, core.Auto(), core.FormatText, Options{
		Handler: stubHandlerLookup{scope: &special, ok: true},
		URL:     "https://example.com/a",
	})
	require.NoError(t, err)
	assert.True(t, res.Resolution.Resolved)
	assert.Equal(t, core.ScopeSelector, res.Resolution.Used.Kind)
	assert.Contains(t, res.Content, "special text")
}

func TestExtract_Handler_UnavailableWithoutCollaborator(t *testing.T) {
	html := `<html><body><p>x</p></body></html>`

	_, err := Extract(html, core.NewHandlerScope("site-x"), core.FormatHTML, Options{})
	require.Error(t, err)
	ee, ok := err.(*core.ExtractError)
	require.True(t, ok)
	assert.Equal(t, core.ErrHandlerUnavailable, ee.Code)
}

func TestExtract_Function_NoRunnerConfigured(t *testing.T) {
	html := `<html><body><p>x</p></body></html>`
	scope := core.NewFunctionScope("() => document.title", 0)

	_, err := Extract(html, scope, core.FormatHTML, Options{})
	require.Error(t, err)
	ee, ok := err.(*core.ExtractError)
	require.True(t, ok)
	assert.Equal(t, core.ErrFunctionScope, ee.Code)
}

func TestExtract_InvalidScope_EmptySelectorInclude(t *testing.T) {
	_, err := Extract("<p>x</p>", core.NewSelectorScope(nil, nil), core.FormatHTML, Options{})
	require.Error(t, err)
	ee, ok := err.(*core.ExtractError)
	require.True(t, ok)
	assert.Equal(t, core.ErrInvalidScope, ee.Code)
}

func TestExtract_EmptyInput(t *testing.T) {
	res, err := Extract("", core.Main(), core.FormatText, Options{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Content)
}

func TestExtract_MainFallsBackWhenNoContainerMatches(t *testing.T) {
	html := `<html><body><p>short</p></body></html>`
	res, err := Extract(html, core.Main(), core.FormatText, Options{})
	require.NoError(t, err)
	assert.Contains(t, res.Content, "short")
}

func TestExtract_InvalidSelectorYieldsNoMatchNotError(t *testing.T) {
	scope := core.NewSelectorScope([]string{":::not-a-selector"}, nil)
	res, err := Extract("<p>x</p>", scope, core.FormatHTML, Options{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Content)
}

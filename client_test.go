package scopeforge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgrove-dev/scopeforge/internal/core"
)

func TestClient_ExtractHTML_Main(t *testing.T) {
	client := New()
	html := `<html><body><nav>nav</nav><article><h1>Hello</h1><p>World</p></article></body></html>`

	res, err := client.ExtractHTML(context.Background(), html, "https://example.com", core.Main(), core.FormatText)
	require.NoError(t, err)
	assert.Contains(t, res.Content, "Hello")
	assert.Contains(t, res.Content, "World")
	assert.NotContains(t, res.Content, "nav")
}

func TestClient_ExtractHTML_Selector(t *testing.T) {
	client := New()
	html := `<html><body><div class="post"><p>keep</p></div><div class="ad">drop</div></body></html>`

	res, err := client.ExtractHTML(context.Background(), html, "", core.NewSelectorScope([]string{".post"}, nil), core.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, res.Content, "keep")
	assert.NotContains(t, res.Content, "drop")
}

func TestClient_MetaHTML(t *testing.T) {
	client := New()
	m := client.MetaHTML(`<html><head><title>Hi</title></head><body></body></html>`)
	require.NotNil(t, m.Title)
	assert.Equal(t, "Hi", *m.Title)
}

func TestClient_Extract_EmptyURL(t *testing.T) {
	client := New()
	_, err := client.Extract(context.Background(), "", core.Main(), core.FormatHTML)
	require.Error(t, err)
}

func TestClient_ExtractHTML_FunctionRunsInDefaultSandbox(t *testing.T) {
	client := New()
	scope := core.NewFunctionScope(`(api, url) => api.$("h1").text`, 1000)
	res, err := client.ExtractHTML(context.Background(), "<h1>Title</h1>", "", scope, core.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Title", res.Content)
}

func TestClient_ExtractHTML_FunctionThrowIsFunctionScopeError(t *testing.T) {
	client := New()
	scope := core.NewFunctionScope(`(api, url) => { throw new Error("boom") }`, 1000)
	_, err := client.ExtractHTML(context.Background(), "<h1>x</h1>", "", scope, core.FormatText)
	require.Error(t, err)
	var ee *core.ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, core.ErrFunctionScope, ee.Code)
}

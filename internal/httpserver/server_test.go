package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExtract_MainMarkdown(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"html":   `<html><body><article><h1>Hello</h1><p>World</p></article></body></html>`,
		"scope":  json.RawMessage(`{"type":"main"}`),
		"format": "markdown",
	})

	resp, err := http.Post(srv.URL+"/extract", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result["content"], "Hello")
}

func TestHandleExtract_InvalidScope(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"html":   `<p>x</p>`,
		"scope":  json.RawMessage(`{"type":"selector"}`),
		"format": "html",
	})

	resp, err := http.Post(srv.URL+"/extract", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleExtract_FunctionThrowIs400(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"html":   `<p>x</p>`,
		"scope":  json.RawMessage(`{"type":"function","code":"(api, url) => { throw new Error(\"boom\") }"}`),
		"format": "html",
	})

	resp, err := http.Post(srv.URL+"/extract", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleExtract_HandlerScopeWithoutCollaboratorIs502(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"html":   `<p>x</p>`,
		"scope":  json.RawMessage(`{"type":"handler","id":"site-x"}`),
		"format": "html",
	})

	resp, err := http.Post(srv.URL+"/extract", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleExtract_URLForm(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><article><h1>Remote</h1></article></body></html>`))
	}))
	defer origin.Close()

	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"url":    origin.URL,
		"scope":  json.RawMessage(`{"type":"main"}`),
		"format": "text",
	})

	resp, err := http.Post(srv.URL+"/extract", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleMeta_URLForm(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Remote</title></head><body></body></html>`))
	}))
	defer origin.Close()

	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/meta?url=" + origin.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleMeta(t *testing.T) {
	s := New()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"html": `<html><head><title>Hi</title></head><body></body></html>`,
	})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/meta", bytes.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "Hi", m["title"])
}

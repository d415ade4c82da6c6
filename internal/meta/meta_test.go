package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	html := `<html><head>
		<title> My Page </title>
		<meta name="description" content="a description">
		<meta name="keywords" content="go, extraction">
		<meta name="robots" content="noindex, nofollow">
		<link rel="canonical" href="https://example.com/canonical">
		<link rel="alternate" hreflang="fr" href="https://example.com/fr">
		<meta property="og:title" content="OG Title">
		<meta property="og:site_name" content="Example">
	</head><body><h1>Heading One</h1></body></html>`

	m := Parse(html)
	require.NotNil(t, m.Title)
	assert.Equal(t, "My Page", *m.Title)
	require.NotNil(t, m.Description)
	assert.Equal(t, "a description", *m.Description)
	require.NotNil(t, m.Heading)
	assert.Equal(t, "Heading One", *m.Heading)
	assert.False(t, m.Index)
	require.NotNil(t, m.Canonical)
	assert.Equal(t, "https://example.com/canonical", *m.Canonical)
	require.Len(t, m.Hreflang, 1)
	assert.Equal(t, "fr", m.Hreflang[0].Lang)
	require.NotNil(t, m.OpenGraph.Title)
	assert.Equal(t, "OG Title", *m.OpenGraph.Title)
}

func TestParse_MissingFieldsAreNil(t *testing.T) {
	m := Parse(`<html><head></head><body></body></html>`)
	assert.Nil(t, m.Title)
	assert.Nil(t, m.Description)
	assert.Nil(t, m.Canonical)
	assert.True(t, m.Index)
	assert.Empty(t, m.Hreflang)
}

func TestParse_EmptyInput(t *testing.T) {
	m := Parse("")
	assert.True(t, m.Index)
	assert.Nil(t, m.Title)
}

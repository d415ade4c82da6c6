package dataplugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashgrove-dev/scopeforge/internal/bridge"
	"github.com/ashgrove-dev/scopeforge/internal/core"
)

func TestHeadings_Derive(t *testing.T) {
	b := bridge.New(`<html><body><h1>Title</h1><p>x</p><h2>Sub</h2></body></html>`)
	out, err := (Headings{}).Derive(core.ExtractionResult{}, b)
	require.NoError(t, err)
	headings := out.([]Heading)
	require.Len(t, headings, 2)
	assert.Equal(t, 1, headings[0].Level)
	assert.Equal(t, "Title", headings[0].Text)
	assert.Equal(t, 2, headings[1].Level)
}

func TestLinks_Derive(t *testing.T) {
	b := bridge.New(`<html><body><a href="/a">A</a><a>no href</a><a href="  ">blank</a></body></html>`)
	out, err := (Links{}).Derive(core.ExtractionResult{}, b)
	require.NoError(t, err)
	links := out.([]Link)
	require.Len(t, links, 1)
	assert.Equal(t, "/a", links[0].Href)
}

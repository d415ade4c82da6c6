package cleaners

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURL_AbsolutePassesThrough(t *testing.T) {
	assert.Equal(t, "https://example.com/a.jpg", ResolveURL("https://example.com/a.jpg", "https://other.com"))
}

func TestResolveURL_ProtocolRelative(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/a.jpg", ResolveURL("//cdn.example.com/a.jpg", "https://example.com"))
}

func TestResolveURL_RelativeResolvesAgainstBase(t *testing.T) {
	assert.Equal(t, "https://example.com/articles/a.jpg", ResolveURL("/articles/a.jpg", "https://example.com/index.html"))
}

func TestResolveURL_EmptyInputYieldsEmpty(t *testing.T) {
	assert.Equal(t, "", ResolveURL("   ", "https://example.com"))
}

func TestResolveURL_NoBaseURLReturnsRawRelative(t *testing.T) {
	assert.Equal(t, "/a.jpg", ResolveURL("/a.jpg", ""))
}

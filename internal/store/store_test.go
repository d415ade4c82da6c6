package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	key := Key("<p>x</p>", "main", "html")

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, "<p>x</p>", time.Hour))

	value, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<p>x</p>", value)
}

func TestStore_ExpiredEntryIsMissing(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	key := Key("<p>x</p>", "main", "html")
	require.NoError(t, s.Set(ctx, key, "value", -time.Second))

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_KeyIsStableAndDistinguishesInputs(t *testing.T) {
	a := Key("<p>x</p>", "main", "html")
	b := Key("<p>x</p>", "main", "html")
	c := Key("<p>y</p>", "main", "html")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestStore_Purge(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "expired", "v", -time.Second))
	require.NoError(t, s.Set(ctx, "fresh", "v", time.Hour))

	n, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

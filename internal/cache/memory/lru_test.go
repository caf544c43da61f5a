package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUGetPut(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Put("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 1, c.Len())
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	c.Put("a", 1)
	c.Put("b", 2)

	// Reading "a" makes "b" the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", 3)
	_, ok = c.Get("b")
	require.False(t, ok, "expected b to be evicted")
	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestLRUNilCacheDegradesToMiss(t *testing.T) {
	var c *LRU[string, int]
	c.Put("a", 1)
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

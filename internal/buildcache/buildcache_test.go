package buildcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheMissThenHit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(dbPath)
	require.NoError(t, err)
	defer c.Close()

	key := Key([]byte("source bytes"), 1e-5)

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(key, []byte("encoded grid")))

	value, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("encoded grid"), value)
}

func TestKeyChangesWithEpsilon(t *testing.T) {
	a := Key([]byte("same source"), 1e-5)
	b := Key([]byte("same source"), 1e-4)
	require.NotEqual(t, a, b)
}

package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"svfmt/internal/format"
)

func TestCacheKeyDependsOnContent(t *testing.T) {
	fopt := format.Options{IndentWidth: 4}
	a, ok := cacheKey(SystemVerilog, fopt, [32]byte{1})
	require.True(t, ok)
	b, ok := cacheKey(SystemVerilog, fopt, [32]byte{2})
	require.True(t, ok)
	assert.NotEqual(t, a, b)
	c, ok := cacheKey(C, fopt, [32]byte{1})
	require.True(t, ok)
	assert.NotEqual(t, a, c)
}

func TestCacheKeyFailureBypassesCache(t *testing.T) {
	marshalKey = func(any) ([]byte, error) { return nil, errors.New("encode failed") }
	t.Cleanup(func() { marshalKey = msgpack.Marshal })

	_, ok := cacheKey(SystemVerilog, format.Options{}, [32]byte{1})
	assert.False(t, ok)

	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	require.NoError(t, os.WriteFile(sv, []byte("module  m;endmodule"), 0o644))
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	opts := FormatOptions{Stdout: true, Cache: cache}
	for range 2 {
		res, err := FormatPaths(context.Background(), []string{sv}, opts)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.NoError(t, res[0].Err)
		assert.False(t, res[0].Cached)
		assert.Equal(t, "module m;\nendmodule\n", string(res[0].Formatted))
	}
	removed, err := cache.Clean()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

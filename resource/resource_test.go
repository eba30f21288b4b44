package resource_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/restyle/resource"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolver(t *testing.T) *resource.Resolver {
	docs, tmp := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "fonts", "a.ttf"), []byte("docs"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "x.bin"), []byte("tmp"), 0o644))
	return &resource.Resolver{
		Bundle: fstest.MapFS{
			"fonts/a.ttf": {Data: []byte("bundle")},
			"fonts/b.ttf": {Data: []byte("bundle-b")},
		},
		Documents: docs,
		Temp:      tmp,
	}
}

func TestSchemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.resource")
	defer teardown()
	//
	r := resolver(t)
	for _, tc := range []struct{ locator, want string }{
		{"bundle://fonts/a.ttf", "bundle"},
		{"documents://fonts/a.ttf", "docs"},
		{"tmp://x.bin", "tmp"},
		{"fonts/a.ttf", "docs"},
		{"fonts/b.ttf", "bundle-b"},
		{"data:text/plain;base64,aGVsbG8=", "hello"},
		{"data:,hello%20world", "hello world"},
		{filepath.Join(r.Temp, "x.bin"), "tmp"},
	} {
		data, err := r.Open(tc.locator)
		require.NoError(t, err, tc.locator)
		assert.Equal(t, tc.want, string(data), tc.locator)
	}
}

func TestNotFound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.resource")
	defer teardown()
	//
	r := resolver(t)
	for _, locator := range []string{
		"bundle://nope.ttf",
		"documents://nope.ttf",
		"tmp://../nope",
		"nope.ttf",
		"/does/not/exist.ttf",
	} {
		_, err := r.Open(locator)
		assert.ErrorIs(t, err, resource.ErrNotFound, locator)
	}
	_, err := (&resource.Resolver{}).Open("bundle://a")
	assert.ErrorIs(t, err, resource.ErrNotFound)
	_, err = r.Open("data:no-comma")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, resource.ErrNotFound)
}

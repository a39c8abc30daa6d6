package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSnippets_SplitsOnce(t *testing.T) {
	sources := map[string]string{"<stdin>": "project(x)\r\nlink_libraries(m)\n"}
	snip := NewTextSnippets(sources)

	assert.Equal(t, "link_libraries(m)", snip.Line("<stdin>", 2))
	assert.Equal(t, "project(x)", snip.Line("<stdin>", 1))
	assert.Equal(t, "", snip.Line("<stdin>", 9))
	assert.Equal(t, "", snip.Line("other", 1))
	assert.Len(t, snip.lines["<stdin>"], 3)

	// Later lookups are served from the split lines, not the source map.
	sources["<stdin>"] = "changed\n"
	assert.Equal(t, "project(x)", snip.Line("<stdin>", 1))
}

func TestFileSnippets(t *testing.T) {
	p := filepath.Join(t.TempDir(), "CMakeLists.txt")
	require.NoError(t, os.WriteFile(p, []byte("a\nb\n"), 0o644))
	snip := NewFileSnippets()
	assert.Equal(t, "b", snip.Line(p, 2))

	require.NoError(t, os.Remove(p))
	assert.Equal(t, "a", snip.Line(p, 1))
	assert.Equal(t, "", snip.Line(filepath.Join(filepath.Dir(p), "missing.cmake"), 1))
}

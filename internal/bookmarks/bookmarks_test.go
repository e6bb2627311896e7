package bookmarks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile drops content into a temp file and returns its path.
func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Bookmarks")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// chromiumDoc is a realistic bookmark document: two leaf entries in the bar,
// one nested in a folder, one under synced.
const chromiumDoc = `{
	"bookmark_bar": {
		"type": "folder",
		"children": [
			{"type": "url", "name": "one", "url": "https://example.com/1"},
			{"type": "url", "name": "two", "url": "https://example.com/2"},
			{"type": "folder", "name": "work", "children": [
				{"type": "url", "name": "three", "url": "https://example.com/3"}
			]}
		]
	},
	"other": {"type": "folder", "children": []},
	"synced": {"type": "folder", "children": [
		{"type": "url", "name": "four", "url": "https://example.com/4"}
	]},
	"version": 1
}`

// TestValidate verifies the validator's failure modes never raise.
func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want bool
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			want: false,
		},
		{
			name: "empty file",
			path: func(t *testing.T) string { return writeFile(t, "") },
			want: false,
		},
		{
			name: "not json",
			path: func(t *testing.T) string { return writeFile(t, "<html>not bookmarks</html>") },
			want: false,
		},
		{
			name: "directory",
			path: func(t *testing.T) string { return t.TempDir() },
			want: false,
		},
		{
			name: "valid document",
			path: func(t *testing.T) string { return writeFile(t, chromiumDoc) },
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.path(t)))
		})
	}
}

// TestCount_ChromiumDocument verifies leaf entries are counted across the
// conventional containers.
func TestCount_ChromiumDocument(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(chromiumDoc), &doc))

	assert.Equal(t, 4, Count(doc))
}

// TestCount_UnrecognizedShapesAreZero verifies odd inputs contribute nothing.
func TestCount_UnrecognizedShapesAreZero(t *testing.T) {
	tests := []struct {
		name string
		doc  any
	}{
		{name: "nil", doc: nil},
		{name: "scalar", doc: 42.0},
		{name: "string", doc: "bookmarks"},
		{name: "unrelated object", doc: map[string]any{"version": 1.0, "checksum": "abc"}},
		{name: "url type mismatch", doc: map[string]any{"type": 7.0, "url": "https://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, Count(tt.doc))
		})
	}
}

// TestCount_DescendsKeysMentioningBookmarks verifies the loose key match on
// untyped objects.
func TestCount_DescendsKeysMentioningBookmarks(t *testing.T) {
	doc := map[string]any{
		"MyBookmarksExport": []any{
			map[string]any{"type": "url", "url": "https://a"},
			map[string]any{"type": "url", "url": "https://b"},
		},
		"metadata": []any{
			map[string]any{"type": "url", "url": "https://ignored"},
		},
	}

	assert.Equal(t, 2, Count(doc))
}

// TestCount_DeeplyNestedDocument verifies the worklist traversal survives
// nesting far beyond any recursion limit.
func TestCount_DeeplyNestedDocument(t *testing.T) {
	const depth = 200000
	leaf := map[string]any{"type": "url", "url": "https://deep"}
	node := any(leaf)
	for i := 0; i < depth; i++ {
		node = map[string]any{"type": "folder", "children": []any{node}}
	}
	doc := map[string]any{"bookmark_bar": node}

	assert.Equal(t, 1, Count(doc))
}

// TestCountFile verifies file-level counting and its failure modes.
func TestCountFile(t *testing.T) {
	path := writeFile(t, chromiumDoc)
	count, ok := CountFile(path)
	assert.True(t, ok)
	assert.Equal(t, 4, count)

	count, ok = CountFile(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, ok)
	assert.Zero(t, count)

	count, ok = CountFile(writeFile(t, strings.Repeat("{", 3)))
	assert.False(t, ok)
	assert.Zero(t, count)
}

package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

func TestLoader_Load(t *testing.T) {
	root := writeArchive(t, map[string]string{
		"MEMORY.md":             "# Memory\nOriginal Case",
		"journal/2026-01-01.md": "day one",
	})
	loader := NewLoader(root)

	t.Run("top level file", func(t *testing.T) {
		content, err := loader.Load("MEMORY")
		require.NoError(t, err)
		assert.Equal(t, "# Memory\nOriginal Case", content)
	})

	t.Run("nested file", func(t *testing.T) {
		content, err := loader.Load("journal/2026-01-01")
		require.NoError(t, err)
		assert.Equal(t, "day one", content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load("journal/never")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoader_RejectsEscapes(t *testing.T) {
	loader := NewLoader(t.TempDir())

	for _, p := range []string{"", "../outside", "a/../../b", "/etc/passwd"} {
		_, err := loader.Load(p)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "path %q", p)
	}
}

func TestLoader_RejectsHidden(t *testing.T) {
	root := writeArchive(t, map[string]string{
		".private/secret.md": "hidden",
		"notes/.draft.md":    "hidden",
		"notes/visible.md":   "shown",
	})
	loader := NewLoader(root)

	for _, p := range []string{".private/secret", "notes/.draft"} {
		_, err := loader.Load(p)
		assert.ErrorIs(t, err, domain.ErrNotFound, "path %q", p)

		_, err = loader.FilePath(p)
		assert.ErrorIs(t, err, domain.ErrNotFound, "path %q", p)
	}

	content, err := loader.Load("notes/visible")
	require.NoError(t, err)
	assert.Equal(t, "shown", content)
}

func TestLoader_FilePath(t *testing.T) {
	loader := NewLoader("/archive")

	got, err := loader.FilePath("journal/x")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/archive", "journal", "x.md"), got)
}

func TestResolveFileURI_RoundTrip(t *testing.T) {
	root := t.TempDir()

	uri := ResolveFileURI(root, "journal/2026-01-01")

	assert.Contains(t, uri, "file://")
	assert.Contains(t, uri, "journal/2026-01-01.md")

	path, ok := PathFromFileURI(root, uri)
	require.True(t, ok)
	assert.Equal(t, "journal/2026-01-01", path)
}

func TestPathFromFileURI_Outside(t *testing.T) {
	root := t.TempDir()

	_, ok := PathFromFileURI(root, "file:///somewhere/else.md")
	assert.False(t, ok)

	_, ok = PathFromFileURI(root, ResolveFileURI(root, "x")+".txt")
	assert.False(t, ok)
}

package filesystem

import (
	"path/filepath"
	"strings"
)

// ResolveFileURI converts an archive path to a file:// URI for opening
// in other tools. Relative roots are made absolute when possible.
func ResolveFileURI(root, path string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	full := filepath.Join(abs, filepath.FromSlash(path)+markdownExt)
	return "file://" + filepath.ToSlash(full)
}

// PathFromFileURI is the inverse of ResolveFileURI.
// It returns false when uri does not point inside root.
func PathFromFileURI(root, uri string) (string, bool) {
	full := filepath.FromSlash(strings.TrimPrefix(uri, "file://"))
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	rel, err := filepath.Rel(abs, full)
	if err != nil || !filepath.IsLocal(rel) || !isMarkdown(rel) {
		return "", false
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), markdownExt), true
}

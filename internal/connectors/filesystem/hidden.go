package filesystem

import (
	"path/filepath"
	"strings"
)

// markdownExt is the only extension the archive indexes.
const markdownExt = ".md"

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// isMarkdown reports whether name has the archive extension.
func isMarkdown(name string) bool {
	return strings.HasSuffix(name, markdownExt)
}

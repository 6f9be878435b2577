package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.ContentLoader = (*Loader)(nil)

// Loader reads archive files by path.
type Loader struct {
	root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load reads <root>/<path>.md.
// Paths that would leave the root are rejected with domain.ErrInvalidInput.
// Hidden paths and read failures are reported as domain.ErrNotFound.
func (l *Loader) Load(path string) (string, error) {
	full, err := l.resolve(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %w", path, domain.ErrNotFound, err)
	}
	return string(data), nil
}

// FilePath returns the on-disk location of path.
func (l *Loader) FilePath(path string) (string, error) {
	return l.resolve(path)
}

func (l *Loader) resolve(path string) (string, error) {
	local := filepath.FromSlash(path)
	if path == "" || !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: path %q", domain.ErrInvalidInput, path)
	}
	if isHidden(path) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return filepath.Join(l.root, local+markdownExt), nil
}

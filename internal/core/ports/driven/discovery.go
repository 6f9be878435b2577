package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// FileDiscovery lists the files of the archive.
// Ordering is the discovery implementation's concern; consumers
// must not rely on it beyond preserving it.
type FileDiscovery interface {
	// List returns every archive file.
	List(ctx context.Context) ([]domain.FileItem, error)

	// LastModified reports when the archive as a whole last changed.
	LastModified(ctx context.Context) (time.Time, error)
}

// ContentLoader reads a file's raw text.
// A missing or unreadable file is a routine outcome reported as
// domain.ErrNotFound, never a panic.
type ContentLoader interface {
	// Load returns the raw text stored under path.
	Load(path string) (string, error)
}

// ContentLoaderFunc adapts a plain function to ContentLoader.
type ContentLoaderFunc func(path string) (string, error)

// Load calls f(path).
func (f ContentLoaderFunc) Load(path string) (string, error) {
	return f(path)
}

// MarkdownRenderer converts Markdown source to HTML.
type MarkdownRenderer interface {
	// Render returns the HTML body and the document title, if one was found.
	Render(source string) (html string, title string, err error)
}

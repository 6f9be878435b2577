package domain

import (
	"strings"
	"time"
)

// FileItem describes one Markdown file in the archive.
// It is produced by file discovery and consumed by the document collector.
type FileItem struct {
	// Path is the slash-separated path relative to the archive root,
	// with the .md extension stripped. Unique across the archive.
	Path string

	// Name is the display file name, extension included.
	Name string

	// Category is the archive grouping.
	Category Category

	// LastModified is the file modification time.
	LastModified time.Time

	// Size is the file size in bytes.
	Size int64
}

// ViewURL returns the archive link for the file.
func (f FileItem) ViewURL() string {
	return ViewURL(f.Path)
}

// ViewURL builds the archive link for a document path.
func ViewURL(path string) string {
	return "/view/" + path + "/"
}

// PathFromViewURL accepts a document path in any of the forms users paste
// ("notes/a", "notes/a.md", "/view/notes/a/") and returns the bare path.
func PathFromViewURL(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/view/")
	s = strings.Trim(s, "/")
	return strings.TrimSuffix(s, ".md")
}

// CategoryGroup is a category with the files that belong to it.
type CategoryGroup struct {
	Category Category
	Label    string
	Files    []FileItem
}

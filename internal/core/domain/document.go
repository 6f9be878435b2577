package domain

// Document is the searchable form of one archive file.
// Content is lower-cased at construction so that matching is
// case-insensitive without re-normalising on every query.
type Document struct {
	// Path is the unique, extension-stripped identifier.
	Path string

	// Name is the display file name.
	Name string

	// Category is the archive grouping.
	Category Category

	// Content is the full lower-cased text.
	Content string
}

// DocumentSet is the immutable collection searched by every query.
// It is built once and replaced wholesale, never edited in place.
type DocumentSet []Document

// Len returns the number of documents.
func (s DocumentSet) Len() int {
	return len(s)
}

// Lookup returns the document with the given path.
func (s DocumentSet) Lookup(path string) (Document, bool) {
	for i := range s {
		if s[i].Path == path {
			return s[i], true
		}
	}
	return Document{}, false
}

package domain

// SearchOptions configures a presentation-level search call.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the configured limit.
	Limit int

	// CapLimit lets Limit lower the configured limit but never raise it.
	CapLimit bool

	// Categories filters results to the given categories. Empty means all.
	Categories []Category
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Path is the matched document's identifier.
	Path string `json:"path"`

	// Name is the display file name.
	Name string `json:"name"`

	// Category is the archive grouping.
	Category Category `json:"category"`

	// Matches is the count of non-overlapping query occurrences.
	Matches int `json:"matches"`

	// Excerpt is a window of text around the first occurrence.
	Excerpt string `json:"excerpt"`
}

// ViewURL returns the archive link for the result.
func (r SearchResult) ViewURL() string {
	return ViewURL(r.Path)
}

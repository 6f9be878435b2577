// Package web serves the read-only archive over HTTP: a category overview,
// rendered Markdown pages, search as HTML and JSON, health and metrics.
package web

import "errors"

var (
	// ErrMissingArchive is returned when the archive service is not provided.
	ErrMissingArchive = errors.New("web: archive service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("web: search service is required")

	// ErrMissingRenderer is returned when the Markdown renderer is not provided.
	ErrMissingRenderer = errors.New("web: markdown renderer is required")
)

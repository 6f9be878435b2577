package web

import (
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// Ports aggregates what the web server needs.
type Ports struct {
	// Search runs queries over the current document set.
	Search driving.SearchService

	// Archive lists and reads files.
	Archive driving.ArchiveService

	// Renderer converts Markdown to HTML for the viewer.
	Renderer driven.MarkdownRenderer

	// DocumentCount reports the size of the current document set for
	// the metrics endpoint. Optional.
	DocumentCount func() int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Archive == nil {
		return ErrMissingArchive
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Renderer == nil {
		return ErrMissingRenderer
	}
	return nil
}

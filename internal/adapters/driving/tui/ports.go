// Package tui provides an interactive terminal user interface for membridge.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// Ports aggregates the driving ports and hooks required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Archive lists files and reads their content.
	Archive driving.ArchiveService

	// PlainText optionally strips Markdown syntax before a document is shown.
	PlainText func(source string) string

	// DocumentCount optionally reports the size of the current document set.
	DocumentCount func() int

	// Rebuilt optionally signals that the document set was replaced.
	// The value is the new document count.
	Rebuilt <-chan int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Archive == nil {
		return ErrMissingArchiveService
	}
	return nil
}

package mcp

import (
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Archive lists and reads archive files. Optional; without it the
	// file tools and resources report nothing.
	Archive driving.ArchiveService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

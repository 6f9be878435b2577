// Package mcp provides an MCP (Model Context Protocol) server adapter for membridge.
// It lets AI assistants search and read the Markdown memory archive.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

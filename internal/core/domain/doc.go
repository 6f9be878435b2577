// Package domain defines the core business entities for membridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileItem: A Markdown file found in the archive
//   - Category: The fixed archive grouping a file belongs to
//   - Document: A lower-cased, immutable searchable copy of a file
//   - SearchResult: A single ranked hit with its excerpt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

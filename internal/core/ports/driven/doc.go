// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - FileDiscovery: Lists the Markdown files of the archive
//   - ContentLoader: Reads a file's raw text by path
//   - ConfigStore: Application configuration
//   - MarkdownRenderer: Turns raw Markdown into HTML for the viewer
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven

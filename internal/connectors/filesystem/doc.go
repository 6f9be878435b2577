// Package filesystem discovers, loads and watches a local Markdown archive.
//
// The archive is a directory tree of .md files. A file's path is its
// slash-separated location relative to the root with the .md suffix
// removed, and its category comes from domain.CategoryForPath.
package filesystem

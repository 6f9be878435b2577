// Package normalisers converts archive file formats into the forms the
// driving adapters present. The markdown normaliser renders notes to HTML
// for the web viewer and to plain text for terminal output.
package normalisers

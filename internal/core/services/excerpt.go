package services

import (
	"strings"
	"unicode/utf8"
)

// Excerpt window sizes, in runes of the lower-cased content.
const (
	excerptLead     = 100
	excerptWindow   = 200
	excerptFallback = 150
	ellipsis        = "..."
)

// Excerpt returns a window of content around the first occurrence of query.
// The window is widened to whitespace on both sides so words are never cut,
// and ellipses mark truncation at either end.
func Excerpt(content, query string) string {
	p := -1
	if query != "" {
		p = strings.Index(content, query)
	}
	if p < 0 {
		return truncateRunes(content, excerptFallback) + ellipsis
	}

	start := runesBack(content, p, excerptLead)
	for start > 0 && !isBoundary(content[start]) {
		start--
	}

	end := runesForward(content, start, excerptWindow)
	for end < len(content) && !isBoundary(content[end]) {
		end++
	}

	excerpt := strings.TrimSpace(content[start:end])
	if start > 0 {
		excerpt = ellipsis + excerpt
	}
	if end < len(content) {
		excerpt += ellipsis
	}
	return excerpt
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\n'
}

// runesBack returns the byte offset n runes before offset i, or 0.
func runesBack(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// runesForward returns the byte offset n runes after offset i, or len(s).
func runesForward(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// DisplayLimit is the number of results shown to a user by default.
// Search itself never truncates.
const DisplayLimit = domain.DefaultSearchLimit

// NormaliseQuery lower-cases and trims a raw query.
func NormaliseQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Search scans set for the literal, case-insensitive query and returns
// every matching document ranked by match count, highest first.
// Equal counts keep their document-set order.
// An empty or whitespace-only query yields an empty slice.
func Search(set domain.DocumentSet, query string) []domain.SearchResult {
	q := NormaliseQuery(query)
	if q == "" {
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0)
	for i := range set {
		doc := &set[i]
		n := CountMatches(doc.Content, q)
		if n == 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Path:     doc.Path,
			Name:     doc.Name,
			Category: doc.Category,
			Matches:  n,
			Excerpt:  Excerpt(doc.Content, q),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Matches > results[b].Matches
	})
	return results
}

// CountMatches counts non-overlapping occurrences of query in content,
// scanning left to right. "aaaa" contains "aa" twice, not three times.
func CountMatches(content, query string) int {
	if query == "" {
		return 0
	}

	count := 0
	pos := 0
	for {
		i := strings.Index(content[pos:], query)
		if i < 0 {
			return count
		}
		count++
		pos += i + len(query)
	}
}

package services

import (
	"context"
	"slices"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
	"github.com/custodia-labs/membridge/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is the presentation-facing search over an Index.
// It filters by category and applies the display cap on top of Search.
type SearchService struct {
	index *Index
	limit int
}

// NewSearchService creates a new search service.
// A non-positive limit falls back to DisplayLimit.
func NewSearchService(index *Index, limit int) *SearchService {
	if limit <= 0 {
		limit = DisplayLimit
	}
	return &SearchService{
		index: index,
		limit: limit,
	}
}

// Search runs the query over the current snapshot.
func (s *SearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if s.index == nil || !s.index.Ready() {
		logger.Warn("Search unavailable: index not built")
		return nil, domain.ErrSearchUnavailable
	}

	results := Search(s.index.Documents(), query)
	logger.Debug("Raw results: %d documents", len(results))

	if len(opts.Categories) > 0 {
		results = filterByCategory(results, opts.Categories)
		logger.Debug("After category filter: %d results", len(results))
	}

	limit := s.effectiveLimit(opts)
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// Limit returns the configured display limit.
func (s *SearchService) Limit() int {
	return s.limit
}

func (s *SearchService) effectiveLimit(opts domain.SearchOptions) int {
	if opts.Limit <= 0 {
		return s.limit
	}
	if opts.CapLimit && opts.Limit > s.limit {
		return s.limit
	}
	return opts.Limit
}

func filterByCategory(results []domain.SearchResult, cats []domain.Category) []domain.SearchResult {
	filtered := make([]domain.SearchResult, 0, len(results))
	for i := range results {
		if slices.Contains(cats, results[i].Category) {
			filtered = append(filtered, results[i])
		}
	}
	return filtered
}

package driving

import (
	"context"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs a literal, case-insensitive substring search over the
	// current document set, ranked by match count and capped by opts.Limit.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

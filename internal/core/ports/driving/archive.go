package driving

import (
	"context"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// ArchiveService exposes the browsable side of the archive.
type ArchiveService interface {
	// Files returns every archive file in discovery order.
	Files(ctx context.Context) ([]domain.FileItem, error)

	// Categories returns files grouped into the fixed categories, in display order.
	Categories(ctx context.Context) ([]domain.CategoryGroup, error)

	// Content returns the original-case text of a file.
	Content(ctx context.Context, path string) (string, error)

	// LastSynced returns a human-readable archive modification time.
	LastSynced() string
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// lastSyncedLayout formats the archive modification time.
const lastSyncedLayout = "2006-01-02 15:04:05"

// ArchiveService lists and reads archive files.
type ArchiveService struct {
	discovery driven.FileDiscovery
	loader    driven.ContentLoader
}

// NewArchiveService creates a new archive service.
func NewArchiveService(discovery driven.FileDiscovery, loader driven.ContentLoader) *ArchiveService {
	return &ArchiveService{
		discovery: discovery,
		loader:    loader,
	}
}

// Files returns every archive file in discovery order.
func (s *ArchiveService) Files(ctx context.Context) ([]domain.FileItem, error) {
	files, err := s.discovery.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Categories groups files by category. Every category is present,
// even when it has no files, so the overview layout is stable.
func (s *ArchiveService) Categories(ctx context.Context) ([]domain.CategoryGroup, error) {
	files, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(files), nil
}

// Content returns the original-case text of the file at path.
func (s *ArchiveService) Content(_ context.Context, path string) (string, error) {
	if path == "" {
		return "", domain.ErrInvalidInput
	}
	content, err := s.loader.Load(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return content, nil
}

// LastSynced returns the archive modification time, or "Unknown".
func (s *ArchiveService) LastSynced() string {
	t, err := s.discovery.LastModified(context.Background())
	if err != nil || t.IsZero() {
		return "Unknown"
	}
	return t.Local().Format(lastSyncedLayout)
}

// GroupByCategory buckets files into the fixed categories in display order.
// Files keep their relative order within a bucket; unknown categories are dropped.
func GroupByCategory(files []domain.FileItem) []domain.CategoryGroup {
	cats := domain.AllCategories()
	groups := make([]domain.CategoryGroup, len(cats))
	pos := make(map[domain.Category]int, len(cats))
	for i, c := range cats {
		groups[i] = domain.CategoryGroup{Category: c, Label: c.Label()}
		pos[c] = i
	}
	for _, f := range files {
		if i, ok := pos[f.Category]; ok {
			groups[i].Files = append(groups[i].Files, f)
		}
	}
	return groups
}

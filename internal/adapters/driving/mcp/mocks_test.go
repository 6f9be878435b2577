package mcp

import (
	"context"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	files    []domain.FileItem
	contents map[string]string
	err      error
}

func (m *mockArchiveService) Files(_ context.Context) ([]domain.FileItem, error) {
	return m.files, m.err
}

func (m *mockArchiveService) Categories(_ context.Context) ([]domain.CategoryGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return services.GroupByCategory(m.files), nil
}

func (m *mockArchiveService) Content(_ context.Context, path string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	content, ok := m.contents[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

func (m *mockArchiveService) LastSynced() string {
	return "2026-01-01 00:00:00"
}

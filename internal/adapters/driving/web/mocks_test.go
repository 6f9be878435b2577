package web

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
	calls    int
}

func (m *mockSearchService) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.calls++
	m.lastOpts = opts
	return m.results, m.err
}

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
	content, ok := m.contents[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

func (m *mockArchiveService) LastSynced() string {
	return "2026-03-04 05:06:07"
}

// mockRenderer wraps source in a paragraph and reports a fixed title.
type mockRenderer struct {
	title string
	err   error
}

func (m *mockRenderer) Render(source string) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return "<p>" + source + "</p>", m.title, nil
}

var errBoom = errors.New("boom")

func sampleFiles() []domain.FileItem {
	mod := time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	files := []domain.FileItem{
		{Path: "MEMORY", Name: "MEMORY.md", Category: domain.CategoryMemory, LastModified: mod},
		{Path: "journal/2026-01-01", Name: "2026-01-01.md", Category: domain.CategoryJournal, LastModified: mod},
	}
	for _, name := range []string{"07", "06", "05", "04", "03", "02", "01"} {
		files = append(files, domain.FileItem{
			Path:     "2026-01-" + name,
			Name:     "2026-01-" + name + ".md",
			Category: domain.CategoryNotes,
		})
	}
	return files
}

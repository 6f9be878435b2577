package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

func newTestServer(t *testing.T, search *mockSearchService, archive *mockArchiveService) *Server {
	t.Helper()
	ports := &Ports{Search: search}
	if archive != nil {
		ports.Archive = archive
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{
				Path:     "journal/2026-01-01",
				Name:     "2026-01-01.md",
				Category: domain.CategoryJournal,
				Matches:  3,
				Excerpt:  "...the quick fox...",
			}},
		}
		server := newTestServer(t, mockSearch, nil)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "fox", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		got := output.Results[0]
		assert.Equal(t, "journal/2026-01-01", got.Path)
		assert.Equal(t, "2026-01-01.md", got.Name)
		assert.Equal(t, "journal", got.Category)
		assert.Equal(t, 3, got.Matches)
		assert.Equal(t, "...the quick fox...", got.Excerpt)
		assert.Equal(t, "membridge://documents/journal/2026-01-01", got.URI)
		assert.Equal(t, "fox", mockSearch.lastQuery)
		assert.Equal(t, 5, mockSearch.lastOpts.Limit)
	})

	t.Run("no limit defers to configured limit", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, mockSearch, nil)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
		assert.Equal(t, 0, mockSearch.lastOpts.Limit)
		assert.True(t, mockSearch.lastOpts.CapLimit)
	})

	t.Run("category filter", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, mockSearch, nil)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "x", Category: "Journal"})

		require.NoError(t, err)
		assert.Equal(t, []domain.Category{domain.CategoryJournal}, mockSearch.lastOpts.Categories)
	})

	t.Run("unknown category", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, nil)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "x", Category: "recipes"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{err: errors.New("search failed")}, nil)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleListFiles(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	archive := &mockArchiveService{files: []domain.FileItem{
		{Path: "MEMORY", Name: "MEMORY.md", Category: domain.CategoryMemory, LastModified: modified, Size: 12},
		{Path: "journal/a", Name: "a.md", Category: domain.CategoryJournal},
	}}

	t.Run("lists all files", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, output, err := server.handleListFiles(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "MEMORY", output.Files[0].Path)
		assert.Equal(t, "2026-01-02 03:04:05", output.Files[0].Modified)
		assert.Equal(t, int64(12), output.Files[0].Size)
		assert.Empty(t, output.Files[1].Modified)
	})

	t.Run("filters by category", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, output, err := server.handleListFiles(ctx, nil, ListInput{Category: "journal"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "journal/a", output.Files[0].Path)
	})

	t.Run("unknown category", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, _, err := server.handleListFiles(ctx, nil, ListInput{Category: "nope"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("no archive service", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, nil)

		_, output, err := server.handleListFiles(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Files)
	})

	t.Run("archive error", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockArchiveService{err: domain.ErrArchiveUnavailable})

		_, _, err := server.handleListFiles(ctx, nil, ListInput{})

		assert.ErrorIs(t, err, domain.ErrArchiveUnavailable)
	})
}

func TestServer_handleReadFile(t *testing.T) {
	ctx := context.Background()
	archive := &mockArchiveService{contents: map[string]string{"MEMORY": "# Memory\nKeep This Case"}}

	t.Run("returns content", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, output, err := server.handleReadFile(ctx, nil, ReadInput{Path: "MEMORY"})

		require.NoError(t, err)
		assert.Equal(t, "MEMORY", output.Path)
		assert.Equal(t, "# Memory\nKeep This Case", output.Content)
	})

	t.Run("view link", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, output, err := server.handleReadFile(ctx, nil, ReadInput{Path: "/view/MEMORY.md/"})

		require.NoError(t, err)
		assert.Equal(t, "MEMORY", output.Path)
	})

	t.Run("empty path", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, _, err := server.handleReadFile(ctx, nil, ReadInput{Path: " / "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing file", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, archive)

		_, _, err := server.handleReadFile(ctx, nil, ReadInput{Path: "nope"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no archive service", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, nil)

		_, _, err := server.handleReadFile(ctx, nil, ReadInput{Path: "MEMORY"})

		assert.ErrorIs(t, err, domain.ErrArchiveUnavailable)
	})
}

func TestServer_handleSearch_ConfiguredLimit(t *testing.T) {
	set := make(domain.DocumentSet, 0, 5)
	for i := 0; i < 5; i++ {
		set = append(set, domain.Document{
			Path:     fmt.Sprintf("notes/fox-%d", i),
			Name:     fmt.Sprintf("fox-%d.md", i),
			Category: domain.CategoryNotes,
			Content:  "the quick brown fox",
		})
	}
	idx := services.NewIndex(nil, nil)
	idx.Replace(set)

	tests := []struct {
		name       string
		configured int
		limit      int
		want       int
	}{
		{"configured below matches", 3, 0, 3},
		{"configured above matches", 20, 0, 5},
		{"input cannot raise configured", 3, 4, 3},
		{"input lowers configured", 20, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(&Ports{Search: services.NewSearchService(idx, tt.configured)})
			require.NoError(t, err)

			_, output, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "fox", Limit: tt.limit})

			require.NoError(t, err)
			assert.Equal(t, tt.want, output.Count)
		})
	}
}

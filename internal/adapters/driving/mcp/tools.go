package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"literal text to find, case-insensitive"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default: configured limit)"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one category such as journal or notes"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Matches  int    `json:"matches"`
	Excerpt  string `json:"excerpt"`
	URI      string `json:"uri"`
}

// ReadInput is the input schema for the read_file tool.
type ReadInput struct {
	Path string `json:"path" jsonschema:"archive path such as journal/2026-01-01, with or without .md, or a /view/ link"`
}

// ReadOutput is the output schema for the read_file tool.
type ReadOutput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ListInput is the input schema for the list_files tool.
type ListInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list files in this category"`
}

// ListOutput is the output schema for the list_files tool.
type ListOutput struct {
	Files []FileOutput `json:"files"`
	Count int          `json:"count"`
}

// FileOutput describes one archive file.
type FileOutput struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Modified string `json:"modified"`
	Size     int64  `json:"size"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the memory archive for a literal phrase; results are ranked by match count",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_files",
		Description: "List archive files grouped by category",
	}, s.handleListFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_file",
		Description: "Read the full Markdown text of an archive file",
	}, s.handleReadFile)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit, CapLimit: true}
	if input.Category != "" {
		cat, err := domain.ParseCategory(input.Category)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		opts.Categories = []domain.Category{cat}
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Path:     results[i].Path,
			Name:     results[i].Name,
			Category: results[i].Category.String(),
			Matches:  results[i].Matches,
			Excerpt:  results[i].Excerpt,
			URI:      documentURI(results[i].Path),
		}
	}

	return nil, output, nil
}

// handleListFiles handles the list_files tool invocation.
func (s *Server) handleListFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	output := ListOutput{Files: []FileOutput{}}
	if s.ports.Archive == nil {
		return nil, output, nil
	}

	var filter domain.Category
	if input.Category != "" {
		cat, err := domain.ParseCategory(input.Category)
		if err != nil {
			return nil, ListOutput{}, err
		}
		filter = cat
	}

	files, err := s.ports.Archive.Files(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing files: %w", err)
	}

	for i := range files {
		if filter != "" && files[i].Category != filter {
			continue
		}
		output.Files = append(output.Files, toFileOutput(files[i]))
	}
	output.Count = len(output.Files)

	return nil, output, nil
}

// handleReadFile handles the read_file tool invocation.
func (s *Server) handleReadFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	if s.ports.Archive == nil {
		return nil, ReadOutput{}, fmt.Errorf("reading %s: %w", input.Path, domain.ErrArchiveUnavailable)
	}

	path := domain.PathFromViewURL(input.Path)
	if path == "" {
		return nil, ReadOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	content, err := s.ports.Archive.Content(ctx, path)
	if err != nil {
		return nil, ReadOutput{}, err
	}

	return nil, ReadOutput{Path: path, Content: content}, nil
}

func toFileOutput(f domain.FileItem) FileOutput {
	out := FileOutput{
		Path:     f.Path,
		Name:     f.Name,
		Category: f.Category.String(),
		Size:     f.Size,
	}
	if !f.LastModified.IsZero() {
		out.Modified = f.LastModified.Format("2006-01-02 15:04:05")
	}
	return out
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for membridge resources.
	uriScheme = "membridge://"

	documentsPrefix = uriScheme + "documents/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "files",
		Name:        "files",
		Description: "Archive files grouped by category",
		MIMEType:    "application/json",
	}, s.handleFilesResource)

	// {+path} keeps the slashes of nested paths such as journal/2026-01-01.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsPrefix + "{+path}",
		Name:        "document-content",
		Description: "Markdown text of an archive file",
		MIMEType:    "text/markdown",
	}, s.handleDocumentResource)
}

// handleFilesResource returns every category with its files.
func (s *Server) handleFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "[]"
	if s.ports.Archive != nil {
		groups, err := s.ports.Archive.Categories(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing categories: %w", err)
		}

		type groupInfo struct {
			Category string       `json:"category"`
			Label    string       `json:"label"`
			Files    []FileOutput `json:"files"`
		}

		infos := make([]groupInfo, len(groups))
		for i, g := range groups {
			files := make([]FileOutput, len(g.Files))
			for j := range g.Files {
				files[j] = toFileOutput(g.Files[j])
			}
			infos[i] = groupInfo{Category: g.Category.String(), Label: g.Label, Files: files}
		}

		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling files: %w", err)
		}
		text = string(data)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// handleDocumentResource returns the Markdown text of one file.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Archive == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	path := extractDocumentPath(req.Params.URI)
	if path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Archive.Content(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

// documentURI builds the resource URI for an archive path.
func documentURI(path string) string {
	return documentsPrefix + path
}

// extractDocumentPath extracts the path from membridge://documents/{path}.
// A trailing slash or .md extension is tolerated.
func extractDocumentPath(uri string) string {
	if !strings.HasPrefix(uri, documentsPrefix) {
		return ""
	}

	path := strings.TrimPrefix(uri, documentsPrefix)
	path = strings.TrimSuffix(path, "/")
	return strings.TrimSuffix(path, ".md")
}

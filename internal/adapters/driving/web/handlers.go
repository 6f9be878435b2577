package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/logger"
)

// searchResponse is the JSON body of /api/search.
type searchResponse struct {
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Results []resultView `json:"results"`
}

// basePage fills the sidebar. Listing failures leave it empty rather than
// failing the page.
func (s *Server) basePage(ctx context.Context) pageData {
	data := pageData{LastSynced: s.ports.Archive.LastSynced()}
	groups, err := s.ports.Archive.Categories(ctx)
	if err != nil {
		logger.Warn("Sidebar unavailable: %v", err)
		return data
	}
	data.Groups = groups
	return data
}

func (s *Server) renderPage(c echo.Context, code int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := s.pages.render(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

func (s *Server) handleIndex(c echo.Context) error {
	data := s.basePage(c.Request().Context())
	if data.Groups == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "archive unavailable")
	}
	data.Overview = buildOverview(data.Groups)
	return s.renderPage(c, http.StatusOK, "index", data)
}

func (s *Server) handleView(c echo.Context) error {
	docPath := domain.PathFromViewURL(c.Param("*"))
	if docPath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}

	ctx := c.Request().Context()
	content, err := s.ports.Archive.Content(ctx, docPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		return err
	}

	body, title, err := s.ports.Renderer.Render(content)
	if err != nil {
		return err
	}
	if title == "" {
		title = path.Base(docPath)
	}

	data := s.basePage(ctx)
	data.Title = title
	data.Crumbs = Breadcrumbs(docPath)
	//nolint:gosec // renderer output is sanitised.
	data.Body = template.HTML(body)
	return s.renderPage(c, http.StatusOK, "view", data)
}

func (s *Server) handleSearchPage(c echo.Context) error {
	query := c.QueryParam("q")
	ctx := c.Request().Context()

	data := s.basePage(ctx)
	data.Title = "Search"
	data.Query = query

	if strings.TrimSpace(query) != "" {
		results, err := s.search(ctx, query, domain.SearchOptions{})
		if err != nil {
			return err
		}
		data.Results = toResultViews(results, query)
	}
	return s.renderPage(c, http.StatusOK, "search", data)
}

func (s *Server) handleSearchAPI(c echo.Context) error {
	query := c.QueryParam("q")

	opts, err := parseSearchOptions(c)
	if err != nil {
		return err
	}
	results, err := s.search(c.Request().Context(), query, opts)
	if err != nil {
		return err
	}

	views := toResultViews(results, query)
	return c.JSON(http.StatusOK, searchResponse{Query: query, Count: len(views), Results: views})
}

// parseSearchOptions reads the optional limit and category parameters.
// The limit may lower the configured limit but never raise it.
func parseSearchOptions(c echo.Context) (domain.SearchOptions, error) {
	opts := domain.SearchOptions{CapLimit: true}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		opts.Limit = n
	}
	for _, raw := range c.QueryParams()["category"] {
		cat, err := domain.ParseCategory(raw)
		if err != nil {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "unknown category "+strconv.Quote(raw))
		}
		opts.Categories = append(opts.Categories, cat)
	}
	return opts, nil
}

// search maps core errors to HTTP errors. The search service applies the
// configured limit.
func (s *Server) search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}

	opts.CapLimit = true
	results, err := s.ports.Search.Search(ctx, query, opts)
	if err != nil {
		if errors.Is(err, domain.ErrSearchUnavailable) {
			return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "search index is not ready")
		}
		return nil, err
	}
	s.metrics.observeSearch(len(results))
	return results, nil
}

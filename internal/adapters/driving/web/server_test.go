package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

type fixture struct {
	search  *mockSearchService
	archive *mockArchiveService
	render  *mockRenderer
	server  *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		search: &mockSearchService{},
		archive: &mockArchiveService{
			files: sampleFiles(),
			contents: map[string]string{
				"MEMORY":             "remember this",
				"journal/2026-01-01": "day one",
			},
		},
		render: &mockRenderer{},
	}
	server, err := NewServer(&Ports{
		Search:        f.search,
		Archive:       f.archive,
		Renderer:      f.render,
		DocumentCount: func() int { return 9 },
	})
	require.NoError(t, err)
	f.server = server
	return f
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Validation(t *testing.T) {
	archive := &mockArchiveService{}
	search := &mockSearchService{}
	render := &mockRenderer{}

	_, err := NewServer(nil)
	assert.ErrorIs(t, err, ErrMissingArchive)

	_, err = NewServer(&Ports{Search: search, Renderer: render})
	assert.ErrorIs(t, err, ErrMissingArchive)

	_, err = NewServer(&Ports{Archive: archive, Renderer: render})
	assert.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewServer(&Ports{Archive: archive, Search: search})
	assert.ErrorIs(t, err, ErrMissingRenderer)

	_, err = NewServer(&Ports{Archive: archive, Search: search, Renderer: render})
	assert.NoError(t, err)
}

func TestIndex(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Memory Archive")
	assert.Contains(t, body, "Last synced: 2026-03-04 05:06:07")
	assert.Contains(t, body, "Documentation")
	assert.Contains(t, body, "Daily Notes")
	assert.Contains(t, body, "No files")
	assert.Contains(t, body, `href="/view/journal/2026-01-01/"`)
	assert.Contains(t, body, "+2 more files")
	assert.Contains(t, body, "2026-02-01")
}

func TestIndex_ArchiveUnavailable(t *testing.T) {
	f := newFixture(t)
	f.archive.err = domain.ErrArchiveUnavailable

	rec := f.get(t, "/")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "archive unavailable")
}

func TestView(t *testing.T) {
	f := newFixture(t)
	f.render.title = "Day One"

	rec := f.get(t, "/view/journal/2026-01-01/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<p>day one</p>")
	assert.Contains(t, body, "<title>Day One · Memory Bridge</title>")
	assert.Contains(t, body, `<a href="/">Home</a>`)
	assert.Contains(t, body, `<a href="/#journal">journal</a>`)
	assert.Contains(t, body, "<strong>2026-01-01</strong>")
}

func TestView_Variants(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/view/MEMORY", "/view/MEMORY/", "/view/MEMORY.md"} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "<title>MEMORY · Memory Bridge</title>", target)
	}
}

func TestView_NotFound(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/view/nope/", "/view/", "/no-such-route"} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", target)
	}
}

func TestView_RenderError(t *testing.T) {
	f := newFixture(t)
	f.render.err = errBoom

	rec := f.get(t, "/view/MEMORY/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchAPI(t *testing.T) {
	f := newFixture(t)
	f.search.results = []domain.SearchResult{{
		Path:     "journal/2026-01-01",
		Name:     "fox<notes>.md",
		Category: domain.CategoryJournal,
		Matches:  2,
		Excerpt:  "the quick fox & the Fox",
	}}

	rec := f.get(t, "/api/search?q=fox")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fox", resp.Query)
	assert.Equal(t, 1, resp.Count)
	got := resp.Results[0]
	assert.Equal(t, "/view/journal/2026-01-01/", got.URL)
	assert.Equal(t, "journal", got.Category)
	assert.Equal(t, 2, got.Matches)
	assert.Equal(t, "<mark>fox</mark>&lt;notes&gt;.md", string(got.NameHTML))
	assert.Equal(t, "the quick <mark>fox</mark> &amp; the <mark>Fox</mark>", string(got.ExcerptHTML))
	assert.Equal(t, 0, f.search.lastOpts.Limit)
	assert.True(t, f.search.lastOpts.CapLimit)
}

func TestSearchAPI_Options(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLimit int
		wantCats  []domain.Category
	}{
		{"lower limit", "/api/search?q=fox&limit=3", 3, nil},
		{"limit passed for capping", "/api/search?q=fox&limit=50", 50, nil},
		{"categories", "/api/search?q=fox&category=journal&category=Notes", 0,
			[]domain.Category{domain.CategoryJournal, domain.CategoryNotes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.get(t, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantLimit, f.search.lastOpts.Limit)
			assert.True(t, f.search.lastOpts.CapLimit)
			assert.Equal(t, tt.wantCats, f.search.lastOpts.Categories)
		})
	}
}

func TestSearchAPI_BadOptions(t *testing.T) {
	for _, target := range []string{
		"/api/search?q=fox&limit=0",
		"/api/search?q=fox&limit=many",
		"/api/search?q=fox&category=recipes",
	} {
		f := newFixture(t)

		rec := f.get(t, target)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, 0, f.search.calls, target)
	}
}

func TestSearchAPI_EmptyQuery(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/search?q=%20%20")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Results)
	assert.Equal(t, 0, f.search.calls)
}

func TestSearchAPI_Unavailable(t *testing.T) {
	f := newFixture(t)
	f.search.err = domain.ErrSearchUnavailable

	rec := f.get(t, "/api/search?q=x")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), "search index is not ready")
}

func TestSearchPage(t *testing.T) {
	f := newFixture(t)
	f.search.results = []domain.SearchResult{
		{Path: "a", Name: "a.md", Category: domain.CategoryNotes, Matches: 1, Excerpt: "one fox"},
		{Path: "b", Name: "b.md", Category: domain.CategoryNotes, Matches: 3, Excerpt: "fox fox fox"},
	}

	rec := f.get(t, "/search?q=fox")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "2 results")
	assert.Contains(t, body, "1 match<")
	assert.Contains(t, body, "3 matches")
	assert.Contains(t, body, "one <mark>fox</mark>")
	assert.Contains(t, body, `value="fox"`)
}

func TestSearchPage_SingularAndNoResults(t *testing.T) {
	f := newFixture(t)
	f.search.results = []domain.SearchResult{{Path: "a", Name: "a.md", Category: domain.CategoryNotes, Matches: 1}}

	rec := f.get(t, "/search?q=a")
	assert.Contains(t, rec.Body.String(), "1 result<")

	f.search.results = nil
	rec = f.get(t, "/search?q=zzz")
	assert.Contains(t, rec.Body.String(), `No results found for "zzz"`)
}

func TestHealthz(t *testing.T) {
	rec := newFixture(t).get(t, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	f := newFixture(t)

	first := f.get(t, "/healthz").Header().Get(echo.HeaderXRequestID)
	second := f.get(t, "/healthz").Header().Get(echo.HeaderXRequestID)

	require.Len(t, first, 36)
	assert.NotEqual(t, first, second)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-id")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "caller-id", rec.Header().Get(echo.HeaderXRequestID))
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	f.get(t, "/")
	f.get(t, "/api/search?q=fox")

	rec := f.get(t, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "membridge_documents 9")
	assert.Contains(t, body, `membridge_http_requests_total{code="200",method="GET",route="/"} 1`)
	assert.Contains(t, body, "membridge_search_queries_total 1")
	assert.Contains(t, body, "membridge_http_request_duration_seconds")
}

func TestStart_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- f.server.Start(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}

func foxIndex(n int) *services.Index {
	set := make(domain.DocumentSet, 0, n)
	for i := 0; i < n; i++ {
		set = append(set, domain.Document{
			Path:     fmt.Sprintf("notes/fox-%d", i),
			Name:     fmt.Sprintf("fox-%d.md", i),
			Category: domain.CategoryNotes,
			Content:  "the quick brown fox",
		})
	}
	idx := services.NewIndex(nil, nil)
	idx.Replace(set)
	return idx
}

func TestSearchAPI_ConfiguredLimit(t *testing.T) {
	tests := []struct {
		name       string
		configured int
		target     string
		want       int
	}{
		{"configured below matches", 3, "/api/search?q=fox", 3},
		{"configured above matches", 20, "/api/search?q=fox", 5},
		{"request cannot raise configured", 3, "/api/search?q=fox&limit=4", 3},
		{"request lowers configured", 20, "/api/search?q=fox&limit=2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(&Ports{
				Search:   services.NewSearchService(foxIndex(5), tt.configured),
				Archive:  &mockArchiveService{files: sampleFiles()},
				Renderer: &mockRenderer{},
			})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var body searchResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Count)
			assert.Len(t, body.Results, tt.want)
		})
	}
}

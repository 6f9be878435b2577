package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// overviewLimit is how many files each category shows on the overview.
const overviewLimit = 5

var pageNames = []string{"index", "view", "search", "error"}

// pageData is the view model shared by every page.
type pageData struct {
	Title      string
	Query      string
	LastSynced string
	Groups     []domain.CategoryGroup

	Overview []overviewGroup
	Crumbs   []Breadcrumb
	Body     template.HTML
	Results  []resultView
	Message  string
}

type overviewGroup struct {
	Category domain.Category
	Label    string
	Files    []domain.FileItem
	More     int
}

// resultView is a search result with highlighted name and excerpt.
type resultView struct {
	Path        string        `json:"path"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Matches     int           `json:"matches"`
	Excerpt     string        `json:"excerpt"`
	URL         string        `json:"url"`
	NameHTML    template.HTML `json:"name_html"`
	ExcerptHTML template.HTML `json:"excerpt_html"`
}

// renderer executes the embedded page templates.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02")
		},
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) render(w io.Writer, name string, data pageData) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// buildOverview caps each category at overviewLimit files.
func buildOverview(groups []domain.CategoryGroup) []overviewGroup {
	out := make([]overviewGroup, len(groups))
	for i, g := range groups {
		files := g.Files
		more := 0
		if len(files) > overviewLimit {
			more = len(files) - overviewLimit
			files = files[:overviewLimit]
		}
		out[i] = overviewGroup{Category: g.Category, Label: g.Label, Files: files, More: more}
	}
	return out
}

// highlightHTML escapes text and wraps every occurrence of the query in <mark>.
func highlightHTML(h *services.Highlighter, text string) template.HTML {
	//nolint:gosec // every fragment is escaped before wrapping.
	return template.HTML(h.Apply(text, template.HTMLEscapeString, func(s string) string {
		return "<mark>" + template.HTMLEscapeString(s) + "</mark>"
	}))
}

func toResultViews(results []domain.SearchResult, query string) []resultView {
	h := services.NewHighlighter(query)
	views := make([]resultView, len(results))
	for i, r := range results {
		views[i] = resultView{
			Path:        r.Path,
			Name:        r.Name,
			Category:    r.Category.String(),
			Matches:     r.Matches,
			Excerpt:     r.Excerpt,
			URL:         r.ViewURL(),
			NameHTML:    highlightHTML(h, r.Name),
			ExcerptHTML: highlightHTML(h, r.Excerpt),
		}
	}
	return views
}

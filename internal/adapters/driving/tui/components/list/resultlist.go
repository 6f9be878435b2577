// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

// ResultList displays search results in a navigable list.
// Query matches inside names and excerpts are highlighted.
type ResultList struct {
	query    string
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if strings.TrimSpace(r.query) == "" {
		return r.styles.Muted.Render("Type to search the archive")
	}
	if len(r.results) == 0 {
		return r.styles.Muted.Render(fmt.Sprintf("No results found for %q", r.query))
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(ResultCount(len(r.results))), "")

	// Each result takes three lines.
	visibleCount := (r.height - 2) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.results))

	hl := services.NewHighlighter(r.query)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i], hl))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one result: name, category and match count, then the excerpt.
func (r *ResultList) renderResult(index int, result *domain.SearchResult, hl *services.Highlighter) string {
	indicator := "  "
	nameStyle := r.styles.Normal
	if index == r.selected {
		indicator = "> "
		nameStyle = r.styles.Selected
	}

	name := hl.Apply(result.Name,
		func(s string) string { return nameStyle.Render(s) },
		func(s string) string { return r.styles.Highlight.Render(s) })
	badge := r.styles.CategoryBadge(result.Category)
	count := r.styles.Muted.Render(MatchCount(result.Matches))
	titleLine := indicator + name + " " + badge + " " + count

	excerpt := truncate(strings.Join(strings.Fields(result.Excerpt), " "), r.width-6)
	excerptLine := "    " + hl.Apply(excerpt,
		func(s string) string { return r.styles.Muted.Render(s) },
		func(s string) string { return r.styles.Highlight.Render(s) })

	return titleLine + "\n" + excerptLine + "\n"
}

// ResultCount formats the result total as "N result(s)".
func ResultCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

// MatchCount formats a per-result total as "N match(es)".
func MatchCount(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

func truncate(s string, maxLen int) string {
	if maxLen < 20 {
		maxLen = 20
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// SetResults replaces the results and the query they answer.
func (r *ResultList) SetResults(query string, results []domain.SearchResult) {
	r.query = query
	r.results = results
	r.selected = 0
}

// Query returns the query the current results answer.
func (r *ResultList) Query() string {
	return r.query
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

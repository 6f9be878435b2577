// Package search provides the search-as-you-type view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// View is the search view: a query input, the ranked results and a status bar.
// Every edit of the query runs a new search.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ArchiveRebuilt:
		v.statusbar.SetDocuments(msg.Documents)
		return v, v.Refresh()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, _, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		switch msg.Type {
		case tea.KeyTab, tea.KeyEnter, tea.KeyDown:
			if v.list.Count() > 0 {
				v.focusResults()
			}
			return v, nil
		default:
		}

		var cmd tea.Cmd
		var changed bool
		v.input, changed, cmd = v.input.Update(msg)
		if changed {
			return v, tea.Batch(cmd, v.performSearch(v.input.Value()))
		}
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.Open):
		return v, v.openSelected()
	case keymap.Matches(msg.String(), v.keymap.Focus):
		v.focusQuery()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.Reset()
	case keymap.Matches(msg.String(), v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}
	return v, nil
}

func (v *View) openSelected() tea.Cmd {
	result := v.list.SelectedResult()
	if result == nil {
		return nil
	}
	selected := messages.FileSelected{
		Path:  result.Path,
		Name:  result.Name,
		Query: v.list.Query(),
		From:  messages.ViewSearch,
	}
	return func() tea.Msg { return selected }
}

// performSearch runs the query in the background.
// A blank query clears the results without calling the service.
func (v *View) performSearch(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		return func() tea.Msg {
			return messages.SearchCompleted{Query: query}
		}
	}
	v.statusbar.SetState(status.StateSearching)

	svc := v.searchService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, domain.SearchOptions{})
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// handleSearchCompleted applies results unless the query has moved on.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Query != v.input.Value() {
		return
	}

	if msg.Err != nil {
		v.setError(msg.Err)
		v.list.SetResults(msg.Query, nil)
		return
	}

	v.err = nil
	v.statusbar.SetMessage("")
	v.list.SetResults(msg.Query, msg.Results)
	if strings.TrimSpace(msg.Query) == "" {
		v.statusbar.SetState(status.StateReady)
		return
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetSummary(list.ResultCount(len(msg.Results)))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	if errors.Is(err, domain.ErrSearchUnavailable) {
		v.statusbar.SetMessage("archive is still loading")
		return
	}
	v.statusbar.SetMessage(err.Error())
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) focusQuery() {
	v.focusInput = true
	v.input.Focus()
}

// Refresh re-runs the current query, if any.
func (v *View) Refresh() tea.Cmd {
	if strings.TrimSpace(v.input.Value()) == "" {
		return nil
	}
	return v.performSearch(v.input.Value())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Memory Bridge"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9)
	v.statusbar.SetWidth(width)
}

// SetDocuments updates the indexed document count in the status bar.
func (v *View) SetDocuments(n int) {
	v.statusbar.SetDocuments(n)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query and returns the command that searches for it.
func (v *View) SetQuery(query string) tea.Cmd {
	v.input.SetValue(query)
	return v.performSearch(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// Reset clears the query and results and focuses the input.
func (v *View) Reset() {
	v.focusQuery()
	v.input.SetValue("")
	v.list.SetResults("", nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

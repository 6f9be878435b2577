package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/views/files"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/membridge/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	searchView   *search.View
	filesView    *files.View
	documentView *document.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The app opens on the search view.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Search),
		filesView:    files.NewView(s, ports.Archive),
		documentView: document.NewView(s, ports.Archive, ports.PlainText),
		currentView:  messages.ViewSearch,
	}
	if ports.DocumentCount != nil {
		app.searchView.SetDocuments(ports.DocumentCount())
	}
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("membridge"),
		a.searchView.Init(),
		a.waitForRebuild(),
	)
}

// waitForRebuild blocks on the rebuild channel and reports the next rebuild.
func (a *App) waitForRebuild() tea.Cmd {
	ch := a.ports.Rebuilt
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return messages.ArchiveRebuilt{Documents: n}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.FilesLoaded:
		a.filesView, cmd = a.filesView.Update(msg)
		return a, cmd

	case messages.FileSelected:
		a.currentView = messages.ViewDocument
		return a, a.documentView.Open(msg)

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.ArchiveRebuilt:
		cmds := []tea.Cmd{a.waitForRebuild()}
		a.searchView, cmd = a.searchView.Update(msg)
		cmds = append(cmds, cmd)
		if a.currentView == messages.ViewFiles {
			a.filesView, cmd = a.filesView.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEsc || key.String() == "q") {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewMenu:
		a.menuView.SetLastSynced(a.ports.Archive.LastSynced())
	case messages.ViewFiles:
		return a.filesView.Init()
	case messages.ViewSearch, messages.ViewDocument, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewFiles:
		return a.filesView.View()
	case messages.ViewDocument:
		return a.documentView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Search:
  (type)      Search as you type
  tab/enter   Move to results
  esc         Back to menu

Results:
  j/k, ↑/↓    Navigate results
  enter       Open file
  tab         Edit query
  n           New search

File:
  j/k, PgUp/PgDn  Scroll
  g/G         Top/bottom
  esc         Back

Anywhere:
  ctrl+c      Quit

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.filesView.SetDimensions(width, height)
	a.documentView.SetDimensions(width, height)
}

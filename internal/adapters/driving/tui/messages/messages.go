// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/membridge/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
// Query identifies the input the results belong to, so stale
// results from an earlier keystroke can be dropped.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewFiles is the archive browser grouped by category.
	ViewFiles
	// ViewDocument shows a single file's content.
	ViewDocument
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewFiles:
		return "files"
	case ViewDocument:
		return "document"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FilesLoaded carries the archive grouped by category.
type FilesLoaded struct {
	Groups []domain.CategoryGroup
	Err    error
}

// FileSelected asks the app to open a file.
// Query is the search that led there, empty when browsing.
type FileSelected struct {
	Path  string
	Name  string
	Query string
	From  ViewType
}

// DocumentLoaded carries the content of a file.
type DocumentLoaded struct {
	Path    string
	Content string
	Err     error
}

// ArchiveRebuilt signals the document set was replaced.
type ArchiveRebuilt struct {
	Documents int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

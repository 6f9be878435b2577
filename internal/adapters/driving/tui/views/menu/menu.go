// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	synced   string
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Search", View: messages.ViewSearch},
			{Label: "Browse archive", View: messages.ViewFiles},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case "/", "s":
		return v, changeView(messages.ViewSearch)
	case "b":
		return v, changeView(messages.ViewFiles)
	case "?":
		return v, changeView(messages.ViewHelp)
	case "enter":
		item := v.items[v.selected]
		if item.Quit {
			return v, tea.Quit
		}
		return v, changeView(item.View)
	case "q":
		return v, tea.Quit
	}
	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the menu.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Memory Bridge"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Markdown memory archive"))
	if v.synced != "" {
		b.WriteString(v.styles.Muted.Render("  ·  Last synced: " + v.synced))
	}
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [/] Search  [b] Browse  [q] Quit"))
	return b.String()
}

// SetLastSynced sets the archive modification time shown under the title.
func (v *View) SetLastSynced(synced string) {
	v.synced = synced
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Package document provides the file content view for the TUI.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/membridge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
	"github.com/custodia-labs/membridge/internal/core/services"
)

// ErrNoArchiveService indicates that no archive service was provided.
var ErrNoArchiveService = errors.New("archive service is required")

// View shows one archive file with query matches highlighted.
type View struct {
	styles    *styles.Styles
	archive   driving.ArchiveService
	plainText func(string) string

	path    string
	name    string
	query   string
	back    messages.ViewType
	content string
	lines   []string
	offset  int
	width   int
	height  int
	err     error
	loading bool
}

// NewView creates a new document view. plainText may be nil.
func NewView(s *styles.Styles, archive driving.ArchiveService, plainText func(string) string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		archive:   archive,
		plainText: plainText,
		back:      messages.ViewSearch,
		width:     80,
		height:    24,
	}
}

// Open resets the view for msg and returns the command that loads the file.
func (v *View) Open(msg messages.FileSelected) tea.Cmd {
	v.path = msg.Path
	v.name = msg.Name
	v.query = msg.Query
	v.back = msg.From
	v.content = ""
	v.lines = nil
	v.offset = 0
	v.err = nil
	v.loading = true

	archive := v.archive
	path := msg.Path
	return func() tea.Msg {
		if archive == nil {
			return messages.DocumentLoaded{Path: path, Err: ErrNoArchiveService}
		}
		content, err := archive.Content(context.Background(), path)
		return messages.DocumentLoaded{Path: path, Content: content, Err: err}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if msg.Path != v.path {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.content = msg.Content
		if v.plainText != nil {
			v.content = v.plainText(v.content)
		}
		v.wrapContent()
		v.jumpToFirstMatch()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scroll(-1)
	case "down", "j":
		v.scroll(1)
	case "pgup", "ctrl+u":
		v.scroll(-v.visibleLines())
	case "pgdown", "ctrl+d", " ":
		v.scroll(v.visibleLines())
	case "home", "g":
		v.offset = 0
	case "end", "G":
		v.offset = v.maxOffset()
	case "esc", "q":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

func (v *View) scroll(delta int) {
	v.offset = max(0, min(v.offset+delta, v.maxOffset()))
}

// wrapContent splits the content into lines no wider than the view.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	width := max(v.width-4, 20)
	raw := strings.Split(strings.ReplaceAll(v.content, "\r\n", "\n"), "\n")
	v.lines = make([]string, 0, len(raw))
	for _, line := range raw {
		runes := []rune(line)
		for len(runes) > width {
			v.lines = append(v.lines, string(runes[:width]))
			runes = runes[width:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

// jumpToFirstMatch scrolls so the first line containing the query is visible.
func (v *View) jumpToFirstMatch() {
	q := services.NormaliseQuery(v.query)
	if q == "" {
		return
	}
	for i, line := range v.lines {
		if strings.Contains(strings.ToLower(line), q) {
			v.offset = max(0, min(i, v.maxOffset()))
			return
		}
	}
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	title := v.name
	if title == "" {
		title = v.path
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(domain.ViewURL(v.path)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		if errors.Is(v.err, domain.ErrNotFound) {
			b.WriteString(v.styles.Error.Render("File not found: " + v.path))
		} else {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		}
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(Empty file)"))
	default:
		v.renderLines(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

func (v *View) renderLines(b *strings.Builder) {
	hl := services.NewHighlighter(v.query)
	visible := v.visibleLines()
	end := min(v.offset+visible, len(v.lines))
	for i := v.offset; i < end; i++ {
		b.WriteString(hl.Apply(v.lines[i],
			func(s string) string { return v.styles.Normal.Render(s) },
			func(s string) string { return v.styles.Highlight.Render(s) }))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		percentage := 100
		if v.maxOffset() > 0 {
			percentage = v.offset * 100 / v.maxOffset()
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.offset+1, end, len(v.lines))))
	}
}

// SetDimensions sets the view dimensions and rewraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
	v.offset = min(v.offset, v.maxOffset())
}

// Path returns the path of the open file.
func (v *View) Path() string {
	return v.path
}

// Content returns the displayed content.
func (v *View) Content() string {
	return v.content
}

// Offset returns the first visible line.
func (v *View) Offset() int {
	return v.offset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

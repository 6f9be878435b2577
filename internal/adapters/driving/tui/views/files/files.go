// Package files provides the archive browser view for the TUI.
package files

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
)

// ErrNoArchiveService indicates that no archive service was provided.
var ErrNoArchiveService = errors.New("archive service is required")

// row is one rendered line: a category header, an empty-category note, or a file.
type row struct {
	header string
	note   string
	file   *domain.FileItem
}

// View lists archive files grouped by category.
type View struct {
	styles  *styles.Styles
	archive driving.ArchiveService

	rows     []row
	files    []int // indexes into rows that hold files
	selected int   // index into files
	offset   int
	synced   string
	width    int
	height   int
	err      error
	loading  bool
}

// NewView creates a new files view.
func NewView(s *styles.Styles, archive driving.ArchiveService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		archive: archive,
		width:   80,
		height:  24,
	}
}

// Init returns the command that loads the archive listing.
func (v *View) Init() tea.Cmd {
	v.loading = true
	archive := v.archive
	return func() tea.Msg {
		if archive == nil {
			return messages.FilesLoaded{Err: ErrNoArchiveService}
		}
		groups, err := archive.Categories(context.Background())
		return messages.FilesLoaded{Groups: groups, Err: err}
	}
}

// Update handles messages for the files view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setGroups(msg.Groups)
			if v.archive != nil {
				v.synced = v.archive.LastSynced()
			}
		}
		return v, nil

	case messages.ArchiveRebuilt:
		return v, v.Init()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) setGroups(groups []domain.CategoryGroup) {
	v.rows = v.rows[:0]
	v.files = v.files[:0]
	for _, g := range groups {
		v.rows = append(v.rows, row{header: fmt.Sprintf("%s (%d)", g.Label, len(g.Files))})
		if len(g.Files) == 0 {
			v.rows = append(v.rows, row{note: "No files"})
		}
		for i := range g.Files {
			v.files = append(v.files, len(v.rows))
			v.rows = append(v.rows, row{file: &g.Files[i]})
		}
	}
	v.selected = min(v.selected, max(len(v.files)-1, 0))
	v.adjustScroll()
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.files)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if f := v.SelectedFile(); f != nil {
			sel := messages.FileSelected{Path: f.Path, Name: f.Name, From: messages.ViewFiles}
			return v, func() tea.Msg { return sel }
		}
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// adjustScroll keeps the selected row, and the header above the first file, visible.
func (v *View) adjustScroll() {
	if len(v.files) == 0 {
		v.offset = 0
		return
	}
	r := v.files[v.selected]
	visible := v.visibleRows()
	if v.selected == 0 {
		v.offset = 0
	} else if r < v.offset {
		v.offset = r
	} else if r >= v.offset+visible {
		v.offset = r - visible + 1
	}
}

func (v *View) visibleRows() int {
	return max(v.height-8, 1)
}

// View renders the files view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Archive (%d files)", len(v.files))))
	if v.synced != "" {
		b.WriteString("  ")
		b.WriteString(v.styles.Muted.Render("Last synced: " + v.synced))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading files..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.rows) == 0:
		b.WriteString(v.styles.Muted.Render("No files"))
	default:
		v.renderRows(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] open  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderRows(b *strings.Builder) {
	visible := v.visibleRows()
	end := min(v.offset+visible, len(v.rows))
	current := -1
	if len(v.files) > 0 {
		current = v.files[v.selected]
	}

	for i := v.offset; i < end; i++ {
		r := v.rows[i]
		switch {
		case r.header != "":
			b.WriteString(v.styles.Subtitle.Render(r.header))
		case r.file == nil:
			b.WriteString(v.styles.Muted.Render("  " + r.note))
		case i == current:
			b.WriteString(v.styles.Selected.Render("> " + v.fileLine(r.file)))
		default:
			b.WriteString(v.styles.Normal.Render("  " + v.fileLine(r.file)))
		}
		b.WriteString("\n")
	}

	if len(v.rows) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.offset+1, end, len(v.rows))))
	}
}

func (v *View) fileLine(f *domain.FileItem) string {
	if f.LastModified.IsZero() {
		return f.Name
	}
	return fmt.Sprintf("%-40s %s", f.Name, f.LastModified.Format("2006-01-02"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// SelectedFile returns the selected file, or nil when the archive is empty.
func (v *View) SelectedFile() *domain.FileItem {
	if v.selected < 0 || v.selected >= len(v.files) {
		return nil
	}
	return v.rows[v.files[v.selected]].file
}

// FileCount returns the number of listed files.
func (v *View) FileCount() int {
	return len(v.files)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

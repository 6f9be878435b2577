package domain

import "strings"

// Category is the fixed grouping a file is displayed under.
type Category string

// Archive categories, in display order.
const (
	CategoryState   Category = "state"
	CategoryMemory  Category = "memory"
	CategoryDocs    Category = "docs"
	CategoryScripts Category = "scripts"
	CategoryReports Category = "reports"
	CategoryJournal Category = "journal"
	CategoryCapture Category = "capture"
	CategoryNotes   Category = "notes"
)

// Well-known file names that get their own category.
const (
	SessionStateFile = "SESSION-STATE.md"
	MemoryFile       = "MEMORY.md"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryState,
		CategoryMemory,
		CategoryDocs,
		CategoryScripts,
		CategoryReports,
		CategoryJournal,
		CategoryCapture,
		CategoryNotes,
	}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryState, CategoryMemory, CategoryDocs, CategoryScripts,
		CategoryReports, CategoryJournal, CategoryCapture, CategoryNotes:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Label returns the heading shown for the category.
func (c Category) Label() string {
	switch c {
	case CategoryState:
		return "State"
	case CategoryMemory:
		return "Memory"
	case CategoryDocs:
		return "Documentation"
	case CategoryScripts:
		return "Scripts"
	case CategoryReports:
		return "Reports"
	case CategoryJournal:
		return "Journal"
	case CategoryCapture:
		return "Capture"
	case CategoryNotes:
		return "Daily Notes"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrUnsupportedType
	}
	return c, nil
}

// CategoryForPath classifies a slash-separated path relative to the archive root.
// The file name wins over the directory for the two well-known files.
func CategoryForPath(relPath string) Category {
	name := relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		name = relPath[i+1:]
	}

	switch {
	case name == SessionStateFile:
		return CategoryState
	case name == MemoryFile:
		return CategoryMemory
	case strings.HasPrefix(relPath, "journal/"):
		return CategoryJournal
	case strings.HasPrefix(relPath, "capture/"):
		return CategoryCapture
	case strings.HasPrefix(relPath, "docs/"):
		return CategoryDocs
	case strings.HasPrefix(relPath, "scripts/"):
		return CategoryScripts
	case strings.HasPrefix(relPath, "reports/"):
		return CategoryReports
	default:
		return CategoryNotes
	}
}

package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/logger"
)

// Ensure Discovery implements the interface.
var _ driven.FileDiscovery = (*Discovery)(nil)

// Discovery walks an archive root for Markdown files.
type Discovery struct {
	root string
}

// NewDiscovery creates a discovery rooted at root.
func NewDiscovery(root string) *Discovery {
	return &Discovery{root: root}
}

// Root returns the archive root.
func (d *Discovery) Root() string {
	return d.root
}

// List returns every .md file under the root, sorted by category and then
// by name descending so date-named files come newest first.
// Hidden entries are skipped, and unreadable subdirectories are logged and
// skipped rather than failing the walk.
func (d *Discovery) List(ctx context.Context) ([]domain.FileItem, error) {
	logger.Section("File Discovery")
	logger.Debug("Root: %s", d.root)

	info, err := os.Stat(d.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrArchiveUnavailable, d.root)
	}

	var files []domain.FileItem
	err = filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(d.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if walkErr != nil {
			logger.Warn("Error reading %s: %v", path, walkErr)
			return nil
		}
		if rel != "." && isHidden(rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isMarkdown(entry.Name()) {
			return nil
		}

		fi, statErr := entry.Info()
		if statErr != nil {
			logger.Warn("Error stating %s: %v", path, statErr)
			return nil
		}

		files = append(files, domain.FileItem{
			Path:         strings.TrimSuffix(rel, markdownExt),
			Name:         entry.Name(),
			Category:     domain.CategoryForPath(rel),
			LastModified: fi.ModTime(),
			Size:         fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", d.root, err)
	}

	SortFiles(files)
	logger.Debug("Discovered %d files", len(files))
	return files, nil
}

// LastModified returns the modification time of the root directory.
func (d *Discovery) LastModified(_ context.Context) (time.Time, error) {
	info, err := os.Stat(d.root)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", domain.ErrArchiveUnavailable, err)
	}
	return info.ModTime(), nil
}

// SortFiles orders files by category ascending, then name descending.
func SortFiles(files []domain.FileItem) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Category != files[j].Category {
			return files[i].Category < files[j].Category
		}
		return files[i].Name > files[j].Name
	})
}

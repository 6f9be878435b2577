package services

import (
	"strings"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/logger"
)

// Collected is the per-file outcome of document collection.
// Exactly one of Document (on success) or Err (on skip) is meaningful.
type Collected struct {
	File     domain.FileItem
	Document domain.Document
	Err      error
}

// Skipped reports whether the file produced no document.
func (c Collected) Skipped() bool {
	return c.Err != nil
}

// CollectDocuments loads every file and records whether it was collected or skipped.
// Output order matches files. The input slice is not modified.
func CollectDocuments(files []domain.FileItem, loader driven.ContentLoader) []Collected {
	out := make([]Collected, 0, len(files))
	for _, f := range files {
		content, err := loader.Load(f.Path)
		if err != nil {
			out = append(out, Collected{File: f, Err: err})
			continue
		}
		out = append(out, Collected{
			File: f,
			Document: domain.Document{
				Path:     f.Path,
				Name:     f.Name,
				Category: f.Category,
				Content:  strings.ToLower(content),
			},
		})
	}
	return out
}

// BuildDocuments returns the document set for files.
// Files whose content cannot be loaded are skipped; one missing file
// never aborts the batch.
func BuildDocuments(files []domain.FileItem, loader driven.ContentLoader) domain.DocumentSet {
	logger.Section("Document Collection")

	collected := CollectDocuments(files, loader)
	set := make(domain.DocumentSet, 0, len(collected))
	for _, c := range collected {
		if c.Skipped() {
			logger.Debug("Skipping %s: %v", c.File.Path, c.Err)
			continue
		}
		set = append(set, c.Document)
	}

	logger.Debug("Collected %d of %d files", len(set), len(files))
	return set
}

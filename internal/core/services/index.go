package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/logger"
)

// Index holds the current document set.
// Rebuild replaces the whole set in one step; readers always see a
// complete snapshot and never block.
type Index struct {
	discovery driven.FileDiscovery
	loader    driven.ContentLoader

	set     atomic.Pointer[domain.DocumentSet]
	builtAt atomic.Pointer[time.Time]
}

// NewIndex creates an empty index over the given discovery and loader.
// Call Rebuild before searching.
func NewIndex(discovery driven.FileDiscovery, loader driven.ContentLoader) *Index {
	return &Index{
		discovery: discovery,
		loader:    loader,
	}
}

// Rebuild discovers files, collects documents and swaps them in.
// It returns the number of documents in the new set.
func (i *Index) Rebuild(ctx context.Context) (int, error) {
	if i.discovery == nil || i.loader == nil {
		return 0, domain.ErrArchiveUnavailable
	}

	files, err := i.discovery.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("discover files: %w", err)
	}

	set := BuildDocuments(files, i.loader)
	i.Replace(set)
	logger.Info("Index rebuilt: %d documents", len(set))
	return len(set), nil
}

// Replace installs set as the current document set.
func (i *Index) Replace(set domain.DocumentSet) {
	now := time.Now()
	i.set.Store(&set)
	i.builtAt.Store(&now)
}

// Documents returns the current snapshot, or nil if none was built.
func (i *Index) Documents() domain.DocumentSet {
	p := i.set.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Ready reports whether a document set has been installed.
func (i *Index) Ready() bool {
	return i.set.Load() != nil
}

// BuiltAt returns when the current set was installed.
func (i *Index) BuiltAt() time.Time {
	p := i.builtAt.Load()
	if p == nil {
		return time.Time{}
	}
	return *p
}

// Command membridge browses and searches a Markdown memory archive.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/custodia-labs/membridge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/membridge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/membridge/internal/adapters/driving/cli"
	"github.com/custodia-labs/membridge/internal/connectors/filesystem"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/core/services"
	"github.com/custodia-labs/membridge/internal/logger"
	"github.com/custodia-labs/membridge/internal/normalisers/markdown"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactory(build)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// build wires the core services for the archive selected by opts.
func build(opts cli.Options) (*cli.Services, error) {
	var store driven.ConfigStore
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("config unavailable, using defaults for this run: %v", err)
		store = memory.NewConfigStore(nil)
	}
	settingsService := services.NewSettingsService(store)
	settings := settingsService.Get()

	root := settings.ArchiveRoot
	if opts.Root != "" {
		root = opts.Root
	}
	root, err = resolveRoot(root)
	if err != nil {
		return nil, err
	}

	discovery := filesystem.NewDiscovery(root)
	loader := filesystem.NewLoader(root)
	index := services.NewIndex(discovery, loader)
	normaliser := markdown.New()

	svc := &cli.Services{
		Search:        services.NewSearchService(index, settings.SearchLimit),
		Archive:       services.NewArchiveService(discovery, loader),
		Settings:      settingsService,
		Renderer:      normaliser,
		PlainText:     normaliser.PlainText,
		Rebuild:       index.Rebuild,
		DocumentCount: func() int { return index.Documents().Len() },
		FileURI: func(path string) string {
			return filesystem.ResolveFileURI(root, path)
		},
		PathFromURI: func(uri string) (string, bool) {
			return filesystem.PathFromFileURI(root, uri)
		},
	}

	if settings.Watch {
		svc.Watch = func(ctx context.Context, onRebuild func(int)) error {
			watcher := filesystem.NewWatcher(root, func(ctx context.Context) error {
				n, err := index.Rebuild(ctx)
				if err != nil {
					return err
				}
				onRebuild(n)
				return nil
			})
			return watcher.Run(ctx)
		}
	}

	return svc, nil
}

// resolveRoot expands a leading ~ and makes the root absolute.
func resolveRoot(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve archive root %q: %w", root, err)
	}
	return abs, nil
}

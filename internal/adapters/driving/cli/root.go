// Package cli provides the membridge command-line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
	"github.com/custodia-labs/membridge/internal/logger"
)

// ErrNotConfigured is returned when a command runs without a service factory.
var ErrNotConfigured = errors.New("services not configured")

// Options carries the global flags to the service factory.
type Options struct {
	// Root overrides the configured archive root when set.
	Root string

	// ConfigDir overrides the config directory when set.
	ConfigDir string
}

// Services are the core services commands run against.
type Services struct {
	Search   driving.SearchService
	Archive  driving.ArchiveService
	Settings driving.SettingsService
	Renderer driven.MarkdownRenderer

	// PlainText strips Markdown syntax. Optional.
	PlainText func(source string) string

	// Rebuild (re)builds the search document set and returns its size.
	Rebuild func(ctx context.Context) (int, error)

	// DocumentCount reports the size of the current document set. Optional.
	DocumentCount func() int

	// FileURI returns a file:// URI for an archive path. Optional.
	FileURI func(path string) string
	// PathFromURI maps a file:// URI back to an archive path. Optional.
	PathFromURI func(uri string) (string, bool)
	// Watch runs until ctx ends, calling onRebuild after every rebuild
	// triggered by a file change. Nil when watching is disabled.
	Watch func(ctx context.Context, onRebuild func(documents int)) error
}

// Factory builds Services from the global flags.
type Factory func(opts Options) (*Services, error)

var (
	version = "dev"

	verbose   bool
	rootFlag  string
	configDir string

	factory Factory
	loaded  *Services
)

var rootCmd = &cobra.Command{
	Use:   "membridge",
	Short: "Browse and search a Markdown memory archive",
	Long: `membridge reads a directory of Markdown memory files, groups them into
categories (state, memory, docs, scripts, reports, journal, capture, notes)
and searches them with a literal, case-insensitive substring match.

Results are ranked by how often the query occurs. The archive can be
searched from the command line, the terminal UI, the web archive, or an
MCP client.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "archive root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.membridge)")
}

// SetFactory sets the function that builds services on first use.
func SetFactory(f Factory) {
	factory = f
	loaded = nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout so it can be piped.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// loadServices builds services once per process from the parsed flags.
func loadServices() (*Services, error) {
	if loaded != nil {
		return loaded, nil
	}
	if factory == nil {
		return nil, ErrNotConfigured
	}
	svc, err := factory(Options{Root: rootFlag, ConfigDir: configDir})
	if err != nil {
		return nil, err
	}
	loaded = svc
	return loaded, nil
}

// loadIndexed builds services and the search document set.
func loadIndexed(ctx context.Context) (*Services, error) {
	svc, err := loadServices()
	if err != nil {
		return nil, err
	}
	if svc.Rebuild != nil {
		n, err := svc.Rebuild(ctx)
		if err != nil {
			return nil, fmt.Errorf("building index: %w", err)
		}
		logger.Debug("Indexed %d documents", n)
	}
	return svc, nil
}

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

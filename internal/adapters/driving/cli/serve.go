package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/adapters/driving/web"
	"github.com/custodia-labs/membridge/internal/logger"
)

var (
	serveAddr    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web archive",
	Long: `Starts the web archive: a category overview, a Markdown viewer at
/view/<path>/, a search page, a JSON search API at /api/search, and
Prometheus metrics at /metrics.

The archive is watched for changes and the search index rebuilt when a
Markdown file is added, changed or removed (disable with --no-watch or
watch.enabled = false).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not rebuild when files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	svc, err := loadIndexed(ctx)
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Search:        svc.Search,
		Archive:       svc.Archive,
		Renderer:      svc.Renderer,
		DocumentCount: svc.DocumentCount,
	})
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" && svc.Settings != nil {
		addr = svc.Settings.Get().ServerAddr
	}

	if !serveNoWatch {
		startWatch(ctx, svc, nil)
	}

	cmd.Printf("Web archive listening on http://%s\n", displayAddr(addr))
	return server.Start(ctx, addr)
}

// startWatch runs svc.Watch in the background until ctx ends.
func startWatch(ctx context.Context, svc *Services, onRebuild func(int)) {
	if svc.Watch == nil {
		return
	}
	if onRebuild == nil {
		onRebuild = func(n int) { logger.Info("Archive rebuilt: %d documents", n) }
	}
	go func() {
		if err := svc.Watch(ctx, onRebuild); err != nil {
			logger.Warn("watcher stopped: %v", err)
		}
	}()
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return fmt.Sprintf("localhost%s", addr)
	}
	return addr
}

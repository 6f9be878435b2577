package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Results update as you type. Open a result to read the file with the
query highlighted, or browse the archive by category.

Controls:
  tab      - Move between query and results
  ↑/k, ↓/j - Navigate results
  Enter    - Open file
  n        - New search
  Esc      - Back
  ctrl+c   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runApp runs the program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	svc, err := loadIndexed(ctx)
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Search:        svc.Search,
		Archive:       svc.Archive,
		PlainText:     svc.PlainText,
		DocumentCount: svc.DocumentCount,
	}

	if svc.Watch != nil {
		rebuilt := make(chan int, 1)
		ports.Rebuilt = rebuilt
		startWatch(ctx, svc, func(n int) {
			// Drop the signal if the UI has not consumed the previous one.
			select {
			case rebuilt <- n:
			default:
			}
		})
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := runApp(app); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

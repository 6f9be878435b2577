package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

var (
	showPlain bool
	showHTML  bool
)

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print an archive file",
	Long: `Prints one archive file. The path may be given with or without the .md
extension, as a /view/<path>/ link copied from the web archive, or as a
file:// URI inside the archive.

Examples:
  membridge show MEMORY
  membridge show journal/2026-01-02.md --plain
  membridge show /view/docs/setup/ --html`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "strip Markdown syntax")
	showCmd.Flags().BoolVar(&showHTML, "html", false, "render to sanitised HTML")
	showCmd.MarkFlagsMutuallyExclusive("plain", "html")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	path := domain.PathFromViewURL(args[0])
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}

	content, err := svc.Archive.Content(commandContext(cmd), path)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("file %q not found in archive", path)
	}
	if err != nil {
		return err
	}

	switch {
	case showHTML:
		if svc.Renderer == nil {
			return errors.New("markdown renderer not configured")
		}
		html, _, err := svc.Renderer.Render(content)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		cmd.Print(html)
	case showPlain && svc.PlainText != nil:
		cmd.Println(svc.PlainText(content))
	default:
		cmd.Print(content)
	}
	return nil
}

// resolveShowPath accepts an archive path, a /view/ link or a file:// URI.
func resolveShowPath(svc *Services, arg string) (string, error) {
	if strings.HasPrefix(arg, "file://") {
		if svc.PathFromURI == nil {
			return "", fmt.Errorf("%w: file URIs are not supported", domain.ErrInvalidInput)
		}
		path, ok := svc.PathFromURI(arg)
		if !ok {
			return "", fmt.Errorf("%w: %s is outside the archive", domain.ErrInvalidInput, arg)
		}
		return path, nil
	}
	path := domain.PathFromViewURL(arg)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	return path, nil
}

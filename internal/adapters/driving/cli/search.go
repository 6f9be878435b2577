package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

var (
	searchLimit      int
	searchJSON       bool
	searchCategories []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the archive",
	Long: `Searches every Markdown file in the archive for the query.

Matching is a literal, case-insensitive substring match: punctuation and
regex characters match themselves. Results are ranked by the number of
non-overlapping occurrences, most first; ties keep archive order.

Examples:
  membridge search "deploy checklist"
  membridge search todo --category journal --category notes
  membridge search api -n 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", services.DisplayLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVarP(&searchCategories, "category", "c", nil,
		"only search these categories (state, memory, docs, scripts, reports, journal, capture, notes)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	opts := domain.SearchOptions{}
	// An unset flag defers to the configured limit.
	if cmd.Flags().Changed("limit") {
		if searchLimit <= 0 {
			return fmt.Errorf("%w: --limit must be positive", domain.ErrInvalidInput)
		}
		opts.Limit = searchLimit
	}
	for _, raw := range searchCategories {
		cat, err := domain.ParseCategory(raw)
		if err != nil {
			return fmt.Errorf("category %q: %w", raw, err)
		}
		opts.Categories = append(opts.Categories, cat)
	}

	ctx := commandContext(cmd)
	svc, err := loadIndexed(ctx)
	if err != nil {
		return err
	}

	results, err := svc.Search.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchText(cmd, query, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, query string, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Printf("No results found for %q\n", query)
		return
	}

	mark := markFunc(cmd.OutOrStdout())
	hl := services.NewHighlighter(query)

	cmd.Println(pluralise(len(results), "result", "results"))
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s  %s  %s\n",
			i+1, hl.Apply(r.Name, nil, mark), r.Category.Label(), pluralise(r.Matches, "match", "matches"))
		cmd.Printf("      %s\n", r.ViewURL())
		excerpt := strings.Join(strings.Fields(r.Excerpt), " ")
		if excerpt != "" {
			cmd.Printf("      %s\n", hl.Apply(excerpt, nil, mark))
		}
		cmd.Println()
	}
}

// markFunc highlights matches on a terminal and leaves them plain otherwise.
func markFunc(w io.Writer) func(string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#F9E2AF"))
		return func(s string) string { return style.Render(s) }
	}
	return func(s string) string { return s }
}

func pluralise(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List archive files by category",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

type listGroup struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Files    []listFile      `json:"files"`
}

type listFile struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	File         string `json:"file,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Size         int64  `json:"size"`
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	groups, err := svc.Archive.Categories(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing archive: %w", err)
	}

	if listJSON {
		return outputListJSON(cmd, groups, svc.FileURI)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Files)
	}
	cmd.Printf("%s  (last synced %s)\n\n", pluralise(total, "file", "files"), svc.Archive.LastSynced())

	for _, g := range groups {
		cmd.Printf("%s (%d)\n", g.Label, len(g.Files))
		if len(g.Files) == 0 {
			cmd.Println("  No files")
		}
		for _, f := range g.Files {
			cmd.Printf("  %-40s %s\n", f.Name, f.ViewURL())
		}
		cmd.Println()
	}
	return nil
}

func outputListJSON(cmd *cobra.Command, groups []domain.CategoryGroup, fileURI func(string) string) error {
	out := make([]listGroup, 0, len(groups))
	for _, g := range groups {
		lg := listGroup{Category: g.Category, Label: g.Label, Files: make([]listFile, 0, len(g.Files))}
		for _, f := range g.Files {
			lf := listFile{Path: f.Path, Name: f.Name, URL: f.ViewURL(), Size: f.Size}
			if fileURI != nil {
				lf.File = fileURI(f.Path)
			}
			if !f.LastModified.IsZero() {
				lf.LastModified = f.LastModified.UTC().Format("2006-01-02T15:04:05Z")
			}
			lg.Files = append(lg.Files, lf)
		}
		out = append(out, lg)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal files: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

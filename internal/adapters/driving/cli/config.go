package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `View and change persisted settings.

Keys:
  archive.root   Archive directory (overridden by --root)
  search.limit   Results shown per search (overridden by --limit)
  server.addr    Web archive listen address (overridden by serve --addr)
  watch.enabled  Rebuild the index when files change`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Example: `  membridge config set archive.root ~/memory
  membridge config set search.limit 20
  membridge config set watch.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := settingsServices()
		if err != nil {
			return err
		}
		cmd.Println(svc.Settings.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsServices() (*Services, error) {
	svc, err := loadServices()
	if err != nil {
		return nil, err
	}
	if svc.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return svc, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsServices()
	if err != nil {
		return err
	}

	settings := svc.Settings.Get()
	values := map[string]string{
		services.KeyArchiveRoot:  settings.ArchiveRoot,
		services.KeySearchLimit:  strconv.Itoa(settings.SearchLimit),
		services.KeyServerAddr:   settings.ServerAddr,
		services.KeyWatchEnabled: strconv.FormatBool(settings.Watch),
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	for _, key := range svc.Settings.Keys() {
		cmd.Printf("  %-14s = %s\n", key, values[key])
	}
	cmd.Println()
	if path := svc.Settings.ConfigPath(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	if rootFlag != "" {
		cmd.Printf("Note: --root %s overrides archive.root for this run.\n", rootFlag)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsServices()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := svc.Settings.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (known keys: %v)", err, svc.Settings.Keys())
		}
		return err
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml inside the data directory.

Keys:
  index.backend            sqlite, memory or bleve
  search.max_results       results per content type (0 = unlimited)
  search.cache_size        cached queries (0 = disabled)
  sync.history_limit       population runs kept
  refresh.interval         minutes between background refreshes (0 = off)
  refresh.rate_per_minute  maximum refreshes per minute
  watch.seed_file          default file for the watch command`,
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Set a single setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List setting keys",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", settings.Index.Backend.Description())
	cmd.Println()

	cmd.Println("[Search]")
	if settings.Search.MaxResults > 0 {
		cmd.Printf("  Max results: %d per type\n", settings.Search.MaxResults)
	} else {
		cmd.Printf("  Max results: unlimited\n")
	}
	cmd.Printf("  Cache size: %d\n", settings.Search.CacheSize)
	cmd.Println()

	cmd.Println("[Sync]")
	cmd.Printf("  History limit: %d\n", settings.Sync.HistoryLimit)
	cmd.Println()

	cmd.Println("[Refresh]")
	if settings.Refresh.Interval > 0 {
		cmd.Printf("  Interval: %v\n", settings.Refresh.Interval)
	} else {
		cmd.Printf("  Interval: off\n")
	}
	cmd.Printf("  Rate: %d per minute\n", settings.Refresh.RatePerMinute)
	cmd.Println()

	cmd.Println("[Watch]")
	if settings.Watch.SeedFile != "" {
		cmd.Printf("  Seed file: %s\n", settings.Watch.SeedFile)
	} else {
		cmd.Printf("  Seed file: (not set)\n")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

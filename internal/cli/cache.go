package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/cache"
)

// newCatalogCache builds the local catalog cache over the panel client.
// Swappable in tests.
var newCatalogCache = func() (*cache.Cache, error) {
	client, err := newPanelClient()
	if err != nil {
		return nil, err
	}

	return cache.New(client), nil
}

// cachedCatalog returns the local catalog when the cache feature is on
// and a previous sync left something usable.
func cachedCatalog() (*cache.Cache, bool) {
	cfg, err := loadConfig()
	if err != nil || !cfg.IsFeatureEnabled("cache") {
		return nil, false
	}

	store, err := newCatalogCache()
	if err != nil {
		return nil, false
	}

	if err := store.Load(); err != nil || store.Count() == 0 {
		return nil, false
	}

	return store, true
}

func init() {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local catalog cache",
	}

	cacheCmd.AddCommand(newCacheSyncCmd())
	cacheCmd.AddCommand(newCacheStatusCmd())
	cacheCmd.AddCommand(newCacheClearCmd())
	rootCmd.AddCommand(cacheCmd)
}

func newCacheSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the catalog cache from the panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newCatalogCache()
			if err != nil {
				return err
			}

			if err := store.Load(); err != nil {
				return fmt.Errorf("load cache: %w", err)
			}

			if err := store.Sync(); err != nil {
				return fmt.Errorf("sync cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache synced: %d entries.\n", store.Count())
			return nil
		},
	}
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the catalog cache holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newCatalogCache()
			if err != nil {
				return err
			}

			if err := store.Load(); err != nil {
				return fmt.Errorf("load cache: %w", err)
			}

			output := cmd.OutOrStdout()
			if store.Count() == 0 {
				fmt.Fprintln(output, "Cache is empty. Run \"panelctl cache sync\".")
				return nil
			}

			fmt.Fprintf(output, "Images:      %d\n", len(store.Eggs()))
			fmt.Fprintf(output, "Nodes:       %d\n", len(store.Nodes()))
			fmt.Fprintf(output, "Last synced: %s\n", store.LastSynced().Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the local catalog cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newCatalogCache()
			if err != nil {
				return err
			}

			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

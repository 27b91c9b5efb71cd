package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/credential"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the panel connection settings",
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetCmd())
	rootCmd.AddCommand(configCmd)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			output := cmd.OutOrStdout()
			panel := cfg.Panel()
			if panel.BaseURL == "" {
				fmt.Fprintln(output, "No panel configured. Run \"panelctl config set --url <panel-url>\".")
				return nil
			}

			envName := panel.APIKeyEnv
			if envName == "" {
				envName = credential.DefaultKeyEnv
			}

			keyStatus := "not set"
			if _, found := credential.DefaultResolver().APIKey(panel.APIKeyEnv); found {
				keyStatus = "set"
			}

			fmt.Fprintf(output, "Panel:   %s\n", panel.BaseURL)
			fmt.Fprintf(output, "API key: %s (%s)\n", envName, keyStatus)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	baseURL := ""
	keyEnv := ""

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the panel address and API key source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			panel := cfg.Panel()
			if baseURL != "" {
				panel.BaseURL = baseURL
			}
			if keyEnv != "" {
				panel.APIKeyEnv = keyEnv
			}

			if err := cfg.SetPanel(panel); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Panel set to %s.\n", cfg.Panel().BaseURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "panel base URL")
	cmd.Flags().StringVar(&keyEnv, "key-env", "", "environment variable holding the API key")

	return cmd
}

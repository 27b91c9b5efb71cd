package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Feature flags gate the optional parts of the client: the full-screen
// create wizard ("tui") and the offline catalog cache ("cache"). Everything
// else behaves the same with every flag off.
func init() {
	featureCmd := &cobra.Command{
		Use:   "feature",
		Short: "Toggle optional client behaviors",
	}

	featureCmd.AddCommand(
		newFeatureToggleCmd(true),
		newFeatureToggleCmd(false),
		&cobra.Command{
			Use:   "list",
			Short: "Show every feature flag and its state",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printFeatureTable(cmd.OutOrStdout())
			},
		},
	)
	rootCmd.AddCommand(featureCmd)
}

func newFeatureToggleCmd(enable bool) *cobra.Command {
	verb := "disable"
	short := "Turn a feature flag off"
	if enable {
		verb = "enable"
		short = "Turn a feature flag on"
	}

	return &cobra.Command{
		Use:   verb + " <flag>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := cfg.SetFeature(args[0], enable); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Feature %q is now %sd.\n", args[0], verb)

			return nil
		},
	}
}

func printFeatureTable(output io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	features := cfg.Features()
	if len(features) == 0 {
		fmt.Fprintln(output, "No feature flags available.")
		return nil
	}

	nameWidth := 0
	for _, f := range features {
		if len(f.Name) > nameWidth {
			nameWidth = len(f.Name)
		}
	}

	for _, f := range features {
		state := "off"
		if f.Enabled {
			state = "on"
		}

		fmt.Fprintf(output, "%-*s  %-3s  %s\n", nameWidth, f.Name, state, f.Description)
	}

	return nil
}

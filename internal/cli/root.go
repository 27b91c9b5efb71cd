package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Create and manage game servers on a hosting panel",
	Long: `panelctl is a CLI client for game-server hosting panels. It walks you
through creating a server (name, resource limits, software image, node)
with a guided wizard, and exposes the panel's server, node and image
catalogs from the command line.

The panel address and API key come from the local config file and the
PANELCTL_API_KEY environment variable (see "panelctl config").`,
	Version: app.Version,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGuidedMainMenu(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func runGuidedMainMenu(cmd *cobra.Command) error {
	if canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return runGuidedMainMenuSurvey(cmd)
	}

	return runGuidedMainMenuPlain(cmd)
}

func runGuidedMainMenuPlain(cmd *cobra.Command) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	output := cmd.OutOrStdout()

	for {
		fmt.Fprintln(output, "Main Menu")
		fmt.Fprintln(output, "  1) Create server")
		fmt.Fprintln(output, "  2) List servers")
		fmt.Fprintln(output, "  3) List images")
		fmt.Fprintln(output, "  4) List nodes")
		fmt.Fprintln(output, "  5) Exit")

		choice, err := readTrimmedLine(reader, output, "Option [1-5]: ")
		if err != nil {
			return fmt.Errorf("read menu option: %w", err)
		}

		switch strings.ToLower(choice) {
		case "1", "create":
			fmt.Fprintln(output)
			if err := runCreateWizardPlain(cmd, reader); err != nil {
				return err
			}
			fmt.Fprintln(output)
		case "2", "servers":
			fmt.Fprintln(output)
			if err := runServersList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(output)
		case "3", "images":
			fmt.Fprintln(output)
			if err := runEggsList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(output)
		case "4", "nodes":
			fmt.Fprintln(output)
			if err := runNodesList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(output)
		case "5", "exit", "q", "quit":
			fmt.Fprintln(output, "Goodbye.")
			return nil
		default:
			fmt.Fprintf(output, "Invalid option %q. Enter 1-5.\n\n", choice)
		}
	}
}

package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/app"
	"github.com/panelctl/panelctl/internal/tui"
	"github.com/panelctl/panelctl/internal/wizard"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a server with the guided wizard",
		Long: `Create walks through the four wizard steps (details, resources,
software, node) and provisions the server on the panel.

With a terminal it runs the full-screen wizard, or a prompt-based one
when the "tui" feature flag is off. Without a terminal it falls back to
line-based prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateWizard(cmd)
		},
	}
}

func runCreateWizard(cmd *cobra.Command) error {
	if canUseInteractiveUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
		cfg, err := loadConfig()
		if err == nil && cfg.IsFeatureEnabled("tui") {
			return runCreateWizardTUI(cmd)
		}

		return runCreateWizardSurvey(cmd)
	}

	return runCreateWizardPlain(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func runCreateWizardTUI(cmd *cobra.Command) error {
	client, err := newPanelClient()
	if err != nil {
		return err
	}

	ctrl := wizard.NewController(panelFetchers(client), client.CreateServer)

	handle, err := tui.Run(ctrl, app.Version)
	if err != nil {
		return err
	}

	if handle == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No server created.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Server created: %s\n", handle)
	return nil
}

func panelFetchers(client *api.Client) wizard.Fetchers {
	return wizard.Fetchers{
		Quota: client.FetchQuota,
		Eggs:  client.FetchEggs,
		Nodes: client.FetchNodes,
	}
}

// startAndWait fires the wizard loads and blocks until none is pending.
// The change channel is registered before Start, so no transition can
// be missed.
func startAndWait(ctrl *wizard.Controller) {
	changed := make(chan struct{}, 1)
	ctrl.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	ctrl.Start()

	for pending(ctrl) {
		<-changed
	}
}

func pending(ctrl *wizard.Controller) bool {
	return ctrl.QuotaState().State == wizard.LoadPending ||
		ctrl.EggsState().State == wizard.LoadPending ||
		ctrl.NodesState().State == wizard.LoadPending
}

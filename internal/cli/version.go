package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/app"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the panelctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.New().GetFullVersion())
		},
	})
}

package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/catalog"
	"github.com/panelctl/panelctl/internal/preset"
)

func init() {
	eggsCmd := &cobra.Command{
		Use:   "eggs",
		Short: "Inspect and administer the image catalog",
	}

	eggsCmd.AddCommand(newEggsListCmd())
	eggsCmd.AddCommand(newEggsCreateCmd())
	eggsCmd.AddCommand(newEggsDeleteCmd())
	eggsCmd.AddCommand(newEggsPresetsCmd())
	rootCmd.AddCommand(eggsCmd)
}

func newEggsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the software images available on the panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEggsList(cmd)
		},
	}
}

func runEggsList(cmd *cobra.Command) error {
	client, err := newPanelClient()
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()

	eggs, err := client.FetchEggs()
	if err != nil {
		store, ok := cachedCatalog()
		if !ok {
			return fmt.Errorf("fetch images: %w", err)
		}

		fmt.Fprintf(output, "Panel unreachable; showing cached catalog from %s.\n\n",
			store.LastSynced().Format("2006-01-02 15:04"))
		eggs = store.Eggs()
	}

	if len(eggs) == 0 {
		fmt.Fprintln(output, "No images found.")
		return nil
	}

	entries := catalog.FromEggs(eggs)
	catalog.Sort(entries)

	fmt.Fprintln(output, "Images:")
	fmt.Fprintln(output)

	for _, entry := range entries {
		line := fmt.Sprintf("  %-4d %s", entry.DisplayID(), entry.DisplayName())
		if desc := entry.Description(); desc != "" {
			line += " - " + desc
		}

		fmt.Fprintln(output, line)
	}

	return nil
}

func newEggsCreateCmd() *cobra.Command {
	presetName := ""

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish an image from a preset (admin)",
		Long: `Create publishes a software image on the panel from a named preset.
Presets are YAML files; panelctl ships a few and also reads them from
a "presets" directory next to the binary, the working directory, and
~/.config/panelctl/presets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := preset.Load()
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}

			chosen, found := presets[presetName]
			if !found {
				return fmt.Errorf("unknown preset %q; run \"panelctl eggs presets\" to see what is available", presetName)
			}

			if err := preset.Validate(chosen); err != nil {
				return fmt.Errorf("preset %q: %w", presetName, err)
			}

			client, err := newPanelClient()
			if err != nil {
				return err
			}

			egg, err := client.CreateEgg(chosen.Request())
			if err != nil {
				return fmt.Errorf("create image: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Image %q published with id %d.\n", egg.Name, egg.EggID)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", "", "preset name to publish")
	_ = cmd.MarkFlagRequired("preset")

	return cmd
}

func newEggsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <egg-id>",
		Short: "Remove an image from the panel (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eggID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid image id %q", args[0])
			}

			client, err := newPanelClient()
			if err != nil {
				return err
			}

			if err := client.DeleteEgg(eggID); err != nil {
				return fmt.Errorf("delete image %d: %w", eggID, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Image %d deleted.\n", eggID)
			return nil
		},
	}
}

func newEggsPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available image presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := preset.Load()
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}

			output := cmd.OutOrStdout()
			if len(presets) == 0 {
				fmt.Fprintln(output, "No presets found.")
				return nil
			}

			names := make([]string, 0, len(presets))
			for name := range presets {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(output, "Presets:")
			fmt.Fprintln(output)

			for _, name := range names {
				p := presets[name]
				line := fmt.Sprintf("  %-20s %s", name, p.DockerImage)
				if p.Description != "" {
					line += " - " + p.Description
				}

				fmt.Fprintln(output, line)
			}

			return nil
		},
	}
}

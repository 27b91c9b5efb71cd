package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/api"
)

func init() {
	serversCmd := &cobra.Command{
		Use:   "servers",
		Short: "Inspect the servers on your account",
	}

	serversCmd.AddCommand(newServersListCmd())
	serversCmd.AddCommand(newServersShowCmd())
	serversCmd.AddCommand(newServersExportCmd())
	rootCmd.AddCommand(serversCmd)
}

func newServersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServersList(cmd)
		},
	}
}

func newServersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <identifier>",
		Short: "Show one server's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newPanelClient()
			if err != nil {
				return err
			}

			server, err := client.GetServer(args[0])
			if err != nil {
				return fmt.Errorf("fetch server %q: %w", args[0], err)
			}

			output := cmd.OutOrStdout()
			fmt.Fprintf(output, "Identifier:  %s\n", server.Identifier)
			fmt.Fprintf(output, "Name:        %s\n", server.Name)
			fmt.Fprintf(output, "Node:        %s\n", server.Node)
			if server.EggName != "" {
				fmt.Fprintf(output, "Image:       %s\n", server.EggName)
			}
			fmt.Fprintf(output, "Memory:      %d MB\n", server.Memory)
			fmt.Fprintf(output, "Disk:        %d MB\n", server.Disk)
			fmt.Fprintf(output, "CPU:         %d%%\n", server.CPU)
			fmt.Fprintf(output, "Databases:   %d\n", server.Databases)
			fmt.Fprintf(output, "Allocations: %d\n", server.Allocations)

			return nil
		},
	}
}

func newServersExportCmd() *cobra.Command {
	outPath := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your servers as a TOML manifest",
		Long: `Export writes every server on the account to a TOML manifest,
suitable for auditing or re-provisioning elsewhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newPanelClient()
			if err != nil {
				return err
			}

			servers, err := client.ListServers()
			if err != nil {
				return fmt.Errorf("fetch servers: %w", err)
			}

			data, err := toml.Marshal(newServerManifest(servers))
			if err != nil {
				return fmt.Errorf("encode manifest: %w", err)
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d server(s) to %s\n", len(servers), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the manifest to a file instead of stdout")

	return cmd
}

func runServersList(cmd *cobra.Command) error {
	client, err := newPanelClient()
	if err != nil {
		return err
	}

	servers, err := client.ListServers()
	if err != nil {
		return fmt.Errorf("fetch servers: %w", err)
	}

	printServersList(cmd.OutOrStdout(), servers)
	return nil
}

// serverManifest is the TOML shape written by "servers export".
type serverManifest struct {
	ExportedAt time.Time        `toml:"exported_at"`
	Servers    []manifestServer `toml:"servers"`
}

type manifestServer struct {
	Identifier  string `toml:"identifier"`
	Name        string `toml:"name"`
	Node        string `toml:"node,omitempty"`
	Image       string `toml:"image,omitempty"`
	Memory      int    `toml:"memory"`
	Disk        int    `toml:"disk"`
	CPU         int    `toml:"cpu"`
	Databases   int    `toml:"databases"`
	Allocations int    `toml:"allocations"`
}

func newServerManifest(servers []api.Server) serverManifest {
	manifest := serverManifest{
		ExportedAt: time.Now().UTC(),
		Servers:    make([]manifestServer, 0, len(servers)),
	}

	for _, srv := range servers {
		manifest.Servers = append(manifest.Servers, manifestServer{
			Identifier:  srv.Identifier,
			Name:        srv.Name,
			Node:        srv.Node,
			Image:       srv.EggName,
			Memory:      srv.Memory,
			Disk:        srv.Disk,
			CPU:         srv.CPU,
			Databases:   srv.Databases,
			Allocations: srv.Allocations,
		})
	}

	return manifest
}

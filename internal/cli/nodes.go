package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/catalog"
)

func init() {
	nodesCmd := &cobra.Command{
		Use:   "nodes",
		Short: "Inspect and administer panel nodes",
	}

	nodesCmd.AddCommand(newNodesListCmd())
	nodesCmd.AddCommand(newNodesCreateCmd())
	nodesCmd.AddCommand(newNodesDeleteCmd())
	rootCmd.AddCommand(nodesCmd)
}

func newNodesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the nodes servers can be deployed on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNodesList(cmd)
		},
	}
}

func runNodesList(cmd *cobra.Command) error {
	client, err := newPanelClient()
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()

	nodes, err := client.FetchNodes()
	if err != nil {
		store, ok := cachedCatalog()
		if !ok {
			return fmt.Errorf("fetch nodes: %w", err)
		}

		fmt.Fprintf(output, "Panel unreachable; showing cached catalog from %s.\n\n",
			store.LastSynced().Format("2006-01-02 15:04"))
		nodes = store.Nodes()
	}

	if len(nodes) == 0 {
		fmt.Fprintln(output, "No nodes found.")
		return nil
	}

	entries := catalog.FromNodes(nodes)
	catalog.Sort(entries)

	fmt.Fprintln(output, "Nodes:")
	fmt.Fprintln(output)

	for _, entry := range entries {
		fmt.Fprintf(output, "  %-4d %s\n", entry.DisplayID(), entry.DisplayName())
	}

	return nil
}

func newNodesCreateCmd() *cobra.Command {
	req := api.CreateNodeRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a node on the panel (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newPanelClient()
			if err != nil {
				return err
			}

			node, err := client.CreateNode(req)
			if err != nil {
				return fmt.Errorf("create node: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Node %q created with id %d.\n", node.Name, node.NodeID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "node display name")
	cmd.Flags().StringVar(&req.Location, "location", "", "node location label")
	cmd.Flags().StringVar(&req.FQDN, "fqdn", "", "node hostname")
	cmd.Flags().IntVar(&req.Memory, "memory", 0, "total memory in MB")
	cmd.Flags().IntVar(&req.Disk, "disk", 0, "total disk in MB")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("fqdn")

	return cmd
}

func newNodesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Remove a node from the panel (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid node id %q", args[0])
			}

			client, err := newPanelClient()
			if err != nil {
				return err
			}

			if err := client.DeleteNode(nodeID); err != nil {
				return fmt.Errorf("delete node %d: %w", nodeID, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Node %d deleted.\n", nodeID)
			return nil
		},
	}
}

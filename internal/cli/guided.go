package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/catalog"
	"github.com/panelctl/panelctl/internal/wizard"
)

// runCreateWizardPlain drives the creation wizard over line-based
// prompts, for pipes and dumb terminals.
func runCreateWizardPlain(cmd *cobra.Command, reader *bufio.Reader) error {
	output := cmd.OutOrStdout()

	client, err := newPanelClient()
	if err != nil {
		return err
	}

	ctrl := wizard.NewController(panelFetchers(client), client.CreateServer)
	defer ctrl.Close()

	fmt.Fprintln(output, "Create Server")
	fmt.Fprintln(output)

	startAndWait(ctrl)

	if snap := ctrl.QuotaState(); snap.State == wizard.LoadFailed {
		return fmt.Errorf("load account quota: %w", snap.Err)
	}

	if ctrl.Blocked() {
		fmt.Fprintln(output, "Your account quota does not allow creating another server.")
		return nil
	}

	fmt.Fprintln(output, "Step 1/4: Details")

	if err := promptDetailsPlain(ctrl, reader, output); err != nil {
		return err
	}
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 2/4: Resources")

	if err := promptResourcesPlain(ctrl, reader, output); err != nil {
		return err
	}
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 3/4: Software")

	eggs, err := loadedEggs(ctrl, reader, output)
	if err != nil {
		return err
	}

	entry, err := pickEntryPlain(reader, output, catalog.FromEggs(eggs), "Image")
	if err != nil {
		return err
	}
	ctrl.SelectEgg(entry.DisplayID())
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 4/4: Node")

	nodes, err := loadedNodes(ctrl, reader, output)
	if err != nil {
		return err
	}

	entry, err = pickEntryPlain(reader, output, catalog.FromNodes(nodes), "Node")
	if err != nil {
		return err
	}
	ctrl.SelectNode(entry.DisplayID())

	fmt.Fprintln(output)
	draft := ctrl.Draft()
	fmt.Fprintf(output, "Creating %q (%d MB RAM, %d MB disk, %d%% CPU)\n",
		draft.Name, draft.Memory, draft.Disk, draft.CPU)

	confirm, err := readTrimmedLine(reader, output, "Proceed? [Y/n]: ")
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}

	if answer := strings.ToLower(confirm); answer != "" && answer != "y" && answer != "yes" {
		fmt.Fprintln(output, "Create cancelled.")
		return nil
	}

	server, err := ctrl.Submit()
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	fmt.Fprintf(output, "Server created: %s\n", server.Identifier)
	return nil
}

func promptDetailsPlain(ctrl *wizard.Controller, reader *bufio.Reader, output io.Writer) error {
	for {
		name, err := readTrimmedLine(reader, output, "Server name: ")
		if err != nil {
			return fmt.Errorf("read server name: %w", err)
		}

		if name == "" {
			fmt.Fprintln(output, "A server name is required.")
			continue
		}

		ctrl.SetName(name)
		break
	}

	description, err := readTrimmedLine(reader, output, "Description (optional): ")
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}

	ctrl.SetDescription(description)
	return nil
}

func promptResourcesPlain(ctrl *wizard.Controller, reader *bufio.Reader, output io.Writer) error {
	quota := ctrl.QuotaState().Value

	for _, dim := range []wizard.Dimension{
		wizard.DimMemory,
		wizard.DimDisk,
		wizard.DimCPU,
		wizard.DimDatabases,
		wizard.DimAllocations,
	} {
		bounds := wizard.BoundsFor(quota, dim)
		current := draftValue(ctrl.Draft(), dim)

		prompt := fmt.Sprintf("%s [%d-%d, step %d, default %d]: ",
			dim, bounds.Min, bounds.Max, bounds.Step, current)

		line, err := readTrimmedLine(reader, output, prompt)
		if err != nil {
			return fmt.Errorf("read %s: %w", dim, err)
		}

		if line == "" {
			continue
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("invalid %s value %q", dim, line)
		}

		clamped := bounds.Clamp(value)
		if clamped != value {
			fmt.Fprintf(output, "Adjusted %s to %d.\n", dim, clamped)
		}

		ctrl.SetResource(dim, clamped)
	}

	return nil
}

func draftValue(draft wizard.Draft, dim wizard.Dimension) int {
	switch dim {
	case wizard.DimMemory:
		return draft.Memory
	case wizard.DimDisk:
		return draft.Disk
	case wizard.DimCPU:
		return draft.CPU
	case wizard.DimDatabases:
		return draft.Databases
	default:
		return draft.Allocations
	}
}

// loadedEggs returns the image catalog, offering a retry prompt after a
// failed load.
func loadedEggs(ctrl *wizard.Controller, reader *bufio.Reader, output io.Writer) ([]api.Egg, error) {
	for {
		snap := ctrl.EggsState()
		if snap.State == wizard.LoadReady {
			return snap.Value, nil
		}

		retry, err := retryLoadPlain(reader, output, "image catalog", snap.Err)
		if err != nil || !retry {
			return nil, err
		}

		ctrl.RetryEggs()
		waitLoadDone(ctrl)
	}
}

func loadedNodes(ctrl *wizard.Controller, reader *bufio.Reader, output io.Writer) ([]api.Node, error) {
	for {
		snap := ctrl.NodesState()
		if snap.State == wizard.LoadReady {
			return snap.Value, nil
		}

		retry, err := retryLoadPlain(reader, output, "node catalog", snap.Err)
		if err != nil || !retry {
			return nil, err
		}

		ctrl.RetryNodes()
		waitLoadDone(ctrl)
	}
}

func retryLoadPlain(reader *bufio.Reader, output io.Writer, what string, cause error) (bool, error) {
	fmt.Fprintf(output, "Could not load the %s: %v\n", what, cause)

	answer, err := readTrimmedLine(reader, output, "Retry? [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("read retry choice: %w", err)
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}

	return false, fmt.Errorf("load %s: %w", what, cause)
}

func waitLoadDone(ctrl *wizard.Controller) {
	changed := make(chan struct{}, 1)
	ctrl.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	for pending(ctrl) {
		<-changed
	}
}

func pickEntryPlain(reader *bufio.Reader, output io.Writer, entries []catalog.Entry, what string) (catalog.Entry, error) {
	if len(entries) == 0 {
		return catalog.Entry{}, fmt.Errorf("no %ss are available on this panel", strings.ToLower(what))
	}

	catalog.Sort(entries)

	for i, entry := range entries {
		line := fmt.Sprintf("  %d) %s", i+1, entry.DisplayName())
		if desc := entry.Description(); desc != "" {
			line += " - " + desc
		}

		fmt.Fprintln(output, line)
	}

	for {
		choice, err := readTrimmedLine(reader, output, fmt.Sprintf("%s [1-%d]: ", what, len(entries)))
		if err != nil {
			return catalog.Entry{}, fmt.Errorf("read %s selection: %w", strings.ToLower(what), err)
		}

		index, err := strconv.Atoi(choice)
		if err != nil || index < 1 || index > len(entries) {
			fmt.Fprintf(output, "Invalid option %q. Enter 1-%d.\n", choice, len(entries))
			continue
		}

		return entries[index-1], nil
	}
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	surveycore "github.com/AlecAivazis/survey/v2/core"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/catalog"
	"github.com/panelctl/panelctl/internal/wizard"
)

var askSurveyOne = func(prompt survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(prompt, response, opts...)
}

func canUseInteractiveUI(input io.Reader, output io.Writer) bool {
	inputFile, inputOK := input.(*os.File)
	outputFile, outputOK := output.(*os.File)
	if !inputOK || !outputOK {
		return false
	}

	return term.IsTerminal(int(inputFile.Fd())) && term.IsTerminal(int(outputFile.Fd()))
}

func runGuidedMainMenuSurvey(cmd *cobra.Command) error {
	for {
		printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select.")

		choice := ""
		prompt := &survey.Select{
			Message:  "Main Menu",
			Options:  []string{"Create server", "List servers", "List images", "List nodes", "Exit"},
			PageSize: 5,
		}

		if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
			return fmt.Errorf("read menu option: %w", err)
		}

		switch choice {
		case "Create server":
			if err := runCreateWizard(cmd); err != nil {
				return err
			}
		case "List servers":
			fmt.Fprintln(cmd.OutOrStdout())
			if err := runServersList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
		case "List images":
			fmt.Fprintln(cmd.OutOrStdout())
			if err := runEggsList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
		case "List nodes":
			fmt.Fprintln(cmd.OutOrStdout())
			if err := runNodesList(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
		case "Exit":
			fmt.Fprintln(cmd.OutOrStdout(), "Goodbye.")
			return nil
		}
	}
}

func runCreateWizardSurvey(cmd *cobra.Command) error {
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

	if err := promptDetailsSurvey(cmd, ctrl); err != nil {
		return err
	}
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 2/4: Resources")

	if err := promptResourcesSurvey(cmd, ctrl); err != nil {
		return err
	}
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 3/4: Software")

	eggs, err := loadedEggsSurvey(cmd, ctrl)
	if err != nil {
		return err
	}

	entry, err := pickEntrySurvey(cmd, catalog.FromEggs(eggs), "Select image")
	if err != nil {
		return err
	}
	ctrl.SelectEgg(entry.DisplayID())
	ctrl.Advance()

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Step 4/4: Node")

	nodes, err := loadedNodesSurvey(cmd, ctrl)
	if err != nil {
		return err
	}

	entry, err = pickEntrySurvey(cmd, catalog.FromNodes(nodes), "Select node")
	if err != nil {
		return err
	}
	ctrl.SelectNode(entry.DisplayID())

	draft := ctrl.Draft()
	fmt.Fprintln(output)
	fmt.Fprintf(output, "Name: %s\n", draft.Name)
	fmt.Fprintf(output, "Resources: %d MB RAM, %d MB disk, %d%% CPU\n", draft.Memory, draft.Disk, draft.CPU)

	confirmChoice := ""
	printSurveyHint(output, "Use Up/Down arrows, Enter to select.")

	confirmPrompt := &survey.Select{
		Message:  "Create the server?",
		Options:  []string{"Yes", "No"},
		Default:  "Yes",
		PageSize: 2,
	}
	if err := askSurveyPrompt(cmd, confirmPrompt, &confirmChoice); err != nil {
		return fmt.Errorf("read create confirmation: %w", err)
	}

	if confirmChoice != "Yes" {
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

func promptDetailsSurvey(cmd *cobra.Command, ctrl *wizard.Controller) error {
	name := ""
	namePrompt := &survey.Input{Message: "Server name:"}
	if err := askSurveyPrompt(cmd, namePrompt, &name, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("read server name: %w", err)
	}
	ctrl.SetName(name)

	description := ""
	descPrompt := &survey.Input{Message: "Description (optional):"}
	if err := askSurveyPrompt(cmd, descPrompt, &description); err != nil {
		return fmt.Errorf("read description: %w", err)
	}
	ctrl.SetDescription(description)

	return nil
}

func promptResourcesSurvey(cmd *cobra.Command, ctrl *wizard.Controller) error {
	quota := ctrl.QuotaState().Value

	for _, dim := range []wizard.Dimension{
		wizard.DimMemory,
		wizard.DimDisk,
		wizard.DimCPU,
		wizard.DimDatabases,
		wizard.DimAllocations,
	} {
		bounds := wizard.BoundsFor(quota, dim)
		options := make([]string, 0, 16)
		for _, value := range bounds.Values() {
			options = append(options, fmt.Sprintf("%d", value))
		}

		selected := fmt.Sprintf("%d", draftValue(ctrl.Draft(), dim))
		prompt := &survey.Select{
			Message:  fmt.Sprintf("%s:", dim),
			Options:  options,
			Default:  selected,
			PageSize: 8,
		}

		if err := askSurveyPrompt(cmd, prompt, &selected); err != nil {
			return fmt.Errorf("read %s: %w", dim, err)
		}

		value := 0
		fmt.Sscanf(selected, "%d", &value)
		ctrl.SetResource(dim, bounds.Clamp(value))
	}

	return nil
}

// loadedEggsSurvey returns the image catalog, offering a retry prompt
// after a failed load.
func loadedEggsSurvey(cmd *cobra.Command, ctrl *wizard.Controller) ([]api.Egg, error) {
	for {
		snap := ctrl.EggsState()
		if snap.State == wizard.LoadReady {
			return snap.Value, nil
		}

		retry, err := retryLoadSurvey(cmd, "image catalog", snap.Err)
		if err != nil || !retry {
			return nil, err
		}

		ctrl.RetryEggs()
		waitLoadDone(ctrl)
	}
}

func loadedNodesSurvey(cmd *cobra.Command, ctrl *wizard.Controller) ([]api.Node, error) {
	for {
		snap := ctrl.NodesState()
		if snap.State == wizard.LoadReady {
			return snap.Value, nil
		}

		retry, err := retryLoadSurvey(cmd, "node catalog", snap.Err)
		if err != nil || !retry {
			return nil, err
		}

		ctrl.RetryNodes()
		waitLoadDone(ctrl)
	}
}

func retryLoadSurvey(cmd *cobra.Command, what string, cause error) (bool, error) {
	output := cmd.OutOrStdout()
	fmt.Fprintf(output, "Could not load the %s: %v\n", what, cause)

	choice := ""
	printSurveyHint(output, "Use Up/Down arrows, Enter to select.")

	prompt := &survey.Select{
		Message:  "Retry the load?",
		Options:  []string{"Retry", "Cancel"},
		Default:  "Retry",
		PageSize: 2,
	}
	if err := askSurveyPrompt(cmd, prompt, &choice); err != nil {
		return false, fmt.Errorf("read retry choice: %w", err)
	}

	if choice == "Retry" {
		return true, nil
	}

	return false, fmt.Errorf("load %s: %w", what, cause)
}

func pickEntrySurvey(cmd *cobra.Command, entries []catalog.Entry, message string) (catalog.Entry, error) {
	if len(entries) == 0 {
		return catalog.Entry{}, fmt.Errorf("nothing to select from on this panel")
	}

	catalog.Sort(entries)

	labels := make([]string, 0, len(entries))
	entryByLabel := make(map[string]catalog.Entry, len(entries))
	for _, entry := range entries {
		label := entry.DisplayName()
		if desc := entry.Description(); desc != "" {
			label = fmt.Sprintf("%s - %s", label, desc)
		}

		labels = append(labels, label)
		entryByLabel[label] = entry
	}

	selectedLabel := ""
	printSurveyHint(cmd.OutOrStdout(), "Use Up/Down arrows, Enter to select. Type to filter.")

	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		PageSize: 10,
		Filter: func(filter string, value string, _ int) bool {
			if strings.TrimSpace(filter) == "" {
				return true
			}

			return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
		},
		FilterMessage: "Filter:",
	}

	if err := askSurveyPrompt(cmd, prompt, &selectedLabel); err != nil {
		return catalog.Entry{}, fmt.Errorf("read selection: %w", err)
	}

	entry, found := entryByLabel[selectedLabel]
	if !found {
		return catalog.Entry{}, fmt.Errorf("selected entry %q not found", selectedLabel)
	}

	return entry, nil
}

func askSurveyPrompt(cmd *cobra.Command, prompt survey.Prompt, response interface{}, extra ...survey.AskOpt) error {
	colorEnabled := surveyColorsEnabled()
	previousDisableColor := surveycore.DisableColor
	surveycore.DisableColor = !colorEnabled
	defer func() {
		surveycore.DisableColor = previousDisableColor
	}()

	questionFormat := "default"
	selectFocusFormat := "default"
	if colorEnabled {
		questionFormat = "cyan"
		selectFocusFormat = "cyan"
	}

	options := []survey.AskOpt{survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = ">"
		icons.Question.Format = questionFormat
		icons.SelectFocus.Text = ">"
		icons.SelectFocus.Format = selectFocusFormat
	})}

	inputFile, inputOK := cmd.InOrStdin().(*os.File)
	outputFile, outputOK := cmd.OutOrStdout().(*os.File)
	if inputOK && outputOK {
		options = append(options, survey.WithStdio(inputFile, outputFile, outputFile))
	}

	options = append(options, extra...)

	return askSurveyOne(prompt, response, options...)
}

func surveyColorsEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}

	termValue := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	return termValue != "dumb"
}

func printSurveyHint(output io.Writer, message string) {
	fmt.Fprintln(output, message)
}

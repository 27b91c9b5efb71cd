package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommand_PlainWizard(t *testing.T) {
	panel := withStubPanel(t)

	// name, description, five resource prompts (accept defaults except
	// memory), image, node, confirmation.
	stdin := bytes.NewBufferString("craft\nweekend smp\n1024\n\n\n\n\n1\n1\ny\n")
	var stdout bytes.Buffer

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"create"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Step 1/4: Details")
	assert.Contains(t, output, "Step 4/4: Node")
	assert.Contains(t, output, "Server created: srv_test")

	require.Len(t, panel.created, 1)
	created := panel.created[0]
	assert.Equal(t, "craft", created.Name)
	assert.Equal(t, "weekend smp", created.Description)
	assert.Equal(t, 1024, created.Memory)
	assert.Equal(t, 3, created.EggID)
	assert.Equal(t, 7, created.NodeID)

	rootCmd.SetArgs([]string{})
}

func TestCreateCommand_PlainWizardClampsInput(t *testing.T) {
	panel := withStubPanel(t)

	// 999999 MB of memory gets pulled down to the 4096 MB quota.
	stdin := bytes.NewBufferString("big\n\n999999\n\n\n\n\n1\n1\ny\n")
	var stdout bytes.Buffer

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"create"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Adjusted memory to 4096")
	require.Len(t, panel.created, 1)
	assert.Equal(t, 4096, panel.created[0].Memory)

	rootCmd.SetArgs([]string{})
}

func TestCreateCommand_PlainWizardCancelled(t *testing.T) {
	panel := withStubPanel(t)

	stdin := bytes.NewBufferString("craft\n\n\n\n\n\n\n1\n1\nn\n")
	var stdout bytes.Buffer

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"create"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Create cancelled.")
	assert.Empty(t, panel.created)

	rootCmd.SetArgs([]string{})
}

func TestCreateCommand_QuotaExhausted(t *testing.T) {
	panel := withStubPanel(t)
	panel.quota.Slots = 0

	stdin := bytes.NewBufferString("")
	var stdout bytes.Buffer

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"create"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "does not allow creating another server")
	assert.Empty(t, panel.created)

	rootCmd.SetArgs([]string{})
}

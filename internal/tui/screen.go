package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/api"
)

// KeyHint describes a keybinding shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// Screen defines the interface each wizard screen must implement.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	StatusHints() []KeyHint
}

// stateChangedMsg is sent whenever the wizard controller reports a
// change (load completions, reclamps, submit outcomes).
type stateChangedMsg struct{}

// advanceMsg requests moving to the next wizard step.
type advanceMsg struct{}

// retreatMsg requests moving to the previous wizard step.
type retreatMsg struct{}

// submitRequestMsg requests sending the draft to the panel.
type submitRequestMsg struct{}

// submitDoneMsg carries the outcome of a create-server call.
type submitDoneMsg struct {
	server api.Server
	err    error
}

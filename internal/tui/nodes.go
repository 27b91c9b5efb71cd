package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/wizard"
)

// NodesScreen picks the node the server will be deployed on and
// confirms the submission.
type NodesScreen struct {
	theme      Theme
	ctrl       *wizard.Controller
	cursor     int
	width      int
	submitting bool
}

// NewNodesScreen creates the node-selection screen.
func NewNodesScreen(theme Theme, ctrl *wizard.Controller) *NodesScreen {
	return &NodesScreen{theme: theme, ctrl: ctrl}
}

func (n *NodesScreen) Init() tea.Cmd {
	return nil
}

// Cursor returns the selected list index, for tests.
func (n *NodesScreen) Cursor() int {
	return n.cursor
}

func (n *NodesScreen) nodes() []api.Node {
	snap := n.ctrl.NodesState()
	if snap.State != wizard.LoadReady {
		return nil
	}

	return snap.Value
}

func (n *NodesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		n.width = msg.Width
		return n, nil

	case stateChangedMsg:
		if nodes := n.nodes(); n.cursor >= len(nodes) {
			n.cursor = 0
		}

		return n, nil

	case submitDoneMsg:
		n.submitting = false
		return n, nil

	case tea.KeyMsg:
		if n.submitting {
			return n, nil
		}

		nodes := n.nodes()

		switch msg.String() {
		case "up", "k":
			if n.cursor > 0 {
				n.cursor--
			}
		case "down", "j":
			if n.cursor < len(nodes)-1 {
				n.cursor++
			}
		case "enter":
			if len(nodes) > 0 {
				n.ctrl.SelectNode(nodes[n.cursor].NodeID)
			}
		case "c":
			if n.ctrl.Draft().NodeID != 0 {
				n.submitting = true
				return n, func() tea.Msg { return submitRequestMsg{} }
			}
		case "esc":
			return n, func() tea.Msg { return retreatMsg{} }
		case "r":
			if n.ctrl.NodesState().State == wizard.LoadFailed {
				n.ctrl.RetryNodes()
			}
		}
	}

	return n, nil
}

func (n *NodesScreen) View() string {
	snap := n.ctrl.NodesState()

	switch snap.State {
	case wizard.LoadPending:
		return "\n" + n.theme.Dim.Render("  Loading node catalog...") + "\n"
	case wizard.LoadFailed:
		return "\n" + n.theme.Error.Render("  Could not load node catalog: "+snap.Err.Error()) + "\n"
	}

	if len(snap.Value) == 0 {
		return "\n" + n.theme.Dim.Render("  No nodes are available on this panel.") + "\n"
	}

	selected := n.ctrl.Draft().NodeID

	var b strings.Builder
	b.WriteString("\n")

	for i, node := range snap.Value {
		marker := " "
		if node.NodeID == selected {
			marker = "*"
		}

		label := node.Name
		if node.Location != "" {
			label = fmt.Sprintf("%s (%s)", node.Name, node.Location)
		}

		line := fmt.Sprintf("%s %s", marker, label)
		if i == n.cursor {
			b.WriteString(n.theme.Cursor.Render("> " + line))
		} else {
			b.WriteString(n.theme.Normal.Render("  " + line))
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	switch {
	case n.submitting:
		b.WriteString(n.theme.Dim.Render("  Creating server..."))
		b.WriteString("\n")
	case n.ctrl.SubmitError() != nil:
		b.WriteString(n.theme.Error.Render("  Create failed: " + n.ctrl.SubmitError().Error()))
		b.WriteString("\n")
	case selected != 0:
		b.WriteString(n.theme.Dim.Render("  Press c to create the server."))
		b.WriteString("\n")
	}

	return b.String()
}

func (n *NodesScreen) StatusHints() []KeyHint {
	if n.ctrl.NodesState().State == wizard.LoadFailed {
		return []KeyHint{
			{Key: "r", Desc: "retry"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	return []KeyHint{
		{Key: "↑/↓", Desc: "select"},
		{Key: "enter", Desc: "choose"},
		{Key: "c", Desc: "create"},
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

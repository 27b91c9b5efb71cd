package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/panelctl/panelctl/internal/wizard"
)

// WizardModel is the root Bubble Tea model for the server-creation
// wizard. It renders the frame (title bar, breadcrumb, status bar) and
// delegates the content area to the screen for the controller's
// current step.
type WizardModel struct {
	theme   Theme
	ctrl    *wizard.Controller
	screen  Screen
	step    wizard.Step
	version string
	width   int
	height  int
	done    bool
}

// NewWizardModel creates the root model over a controller. The
// controller must not be started yet; Run starts it once change
// notifications are wired to the program.
func NewWizardModel(ctrl *wizard.Controller, version string) *WizardModel {
	theme := NewTheme()

	return &WizardModel{
		theme:   theme,
		ctrl:    ctrl,
		screen:  NewDetailsScreen(theme, ctrl),
		step:    wizard.StepDetails,
		version: version,
	}
}

func (m *WizardModel) Init() tea.Cmd {
	return m.screen.Init()
}

// screenFor builds the screen for a controller step.
func (m *WizardModel) screenFor(step wizard.Step) Screen {
	switch step {
	case wizard.StepResources:
		return NewResourcesScreen(m.theme, m.ctrl)
	case wizard.StepSoftware:
		return NewSoftwareScreen(m.theme, m.ctrl)
	case wizard.StepNode:
		return NewNodesScreen(m.theme, m.ctrl)
	default:
		return NewDetailsScreen(m.theme, m.ctrl)
	}
}

// syncScreen swaps the content screen when the controller's step moved
// or the quota turned out to be exhausted.
func (m *WizardModel) syncScreen() tea.Cmd {
	if m.done {
		return nil
	}

	if m.ctrl.Blocked() {
		if _, ok := m.screen.(*BlockedScreen); !ok {
			m.screen = NewBlockedScreen(m.theme)
			return m.screen.Init()
		}

		return nil
	}

	if step := m.ctrl.Step(); step != m.step {
		m.step = step
		m.screen = m.screenFor(step)
		return m.screen.Init()
	}

	return nil
}

func (m *WizardModel) submit() tea.Cmd {
	return func() tea.Msg {
		server, err := m.ctrl.Submit()
		return submitDoneMsg{server: server, err: err}
	}
}

func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case stateChangedMsg:
		if cmd := m.syncScreen(); cmd != nil {
			return m, cmd
		}

	case advanceMsg:
		m.ctrl.Advance()
		return m, m.syncScreen()

	case retreatMsg:
		m.ctrl.Retreat()
		return m, m.syncScreen()

	case submitRequestMsg:
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(msg)
		return m, tea.Batch(cmd, m.submit())

	case submitDoneMsg:
		if msg.err == nil {
			m.done = true
			m.screen = NewResultScreen(m.theme, msg.server)
			return m, m.screen.Init()
		}
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, tea.Batch(cmd, m.syncScreen())
}

// breadcrumbs derives the breadcrumb bar from the controller state.
func (m *WizardModel) breadcrumbs() []BreadcrumbStep {
	draft := m.ctrl.Draft()
	current := m.step

	values := map[wizard.Step]string{
		wizard.StepDetails:   draft.Name,
		wizard.StepResources: fmt.Sprintf("%d MB", draft.Memory),
	}

	steps := make([]BreadcrumbStep, 0, 4)
	for s := wizard.StepDetails; s <= wizard.StepNode; s++ {
		steps = append(steps, BreadcrumbStep{
			Label:     s.String(),
			Value:     values[s],
			Active:    s == current,
			Completed: s < current,
		})
	}

	return steps
}

func (m *WizardModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	title := m.theme.Title.Render("panelctl " + m.version)
	crumb := RenderBreadcrumb(m.theme, m.breadcrumbs())
	separator := m.theme.Separator.Render(strings.Repeat("─", width))

	content := m.screen.View()

	contentHeight := ContentHeight
	if m.height > 0 {
		contentHeight = m.height - ChromeLines - 1
	}

	if lines := strings.Count(content, "\n"); lines < contentHeight {
		content += strings.Repeat("\n", contentHeight-lines)
	}

	status := RenderStatusBar(m.theme, m.screen.StatusHints(), width)

	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+crumb,
		separator,
		content,
		status,
	)
}

// Run drives the full-screen wizard to completion and returns the
// identifier of the created server, or "" if the user quit early.
func Run(ctrl *wizard.Controller, version string) (string, error) {
	model := NewWizardModel(ctrl, version)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Change notifications can fire from inside Update (draft edits go
	// through the controller), so the send must not block the event loop.
	ctrl.OnChange(func() {
		go program.Send(stateChangedMsg{})
	})
	ctrl.Start()
	defer ctrl.Close()

	if _, err := program.Run(); err != nil {
		return "", fmt.Errorf("failed to run wizard: %w", err)
	}

	return ctrl.Handle(), nil
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/wizard"
)

// DetailsScreen collects the server name and description.
type DetailsScreen struct {
	theme Theme
	ctrl  *wizard.Controller
	name  textinput.Model
	desc  textinput.Model
	width int
}

// NewDetailsScreen creates the first wizard screen.
func NewDetailsScreen(theme Theme, ctrl *wizard.Controller) *DetailsScreen {
	draft := ctrl.Draft()

	name := textinput.New()
	name.Prompt = "  Name > "
	name.Placeholder = "my-server"
	name.CharLimit = 60
	name.SetValue(draft.Name)
	name.Focus()

	desc := textinput.New()
	desc.Prompt = "  Description > "
	desc.Placeholder = "optional"
	desc.CharLimit = 200
	desc.SetValue(draft.Description)

	return &DetailsScreen{
		theme: theme,
		ctrl:  ctrl,
		name:  name,
		desc:  desc,
	}
}

func (d *DetailsScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (d *DetailsScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			if d.name.Focused() {
				d.name.Blur()
				return d, d.desc.Focus()
			}

			d.desc.Blur()
			return d, d.name.Focus()

		case "enter":
			return d, func() tea.Msg { return advanceMsg{} }

		case "r":
			if d.ctrl.QuotaState().State == wizard.LoadFailed {
				d.ctrl.RetryQuota()
				return d, nil
			}
		}
	}

	var cmd tea.Cmd
	if d.name.Focused() {
		d.name, cmd = d.name.Update(msg)
		d.ctrl.SetName(d.name.Value())
	} else {
		d.desc, cmd = d.desc.Update(msg)
		d.ctrl.SetDescription(d.desc.Value())
	}

	return d, cmd
}

func (d *DetailsScreen) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(d.name.View())
	b.WriteString("\n")
	b.WriteString(d.desc.View())
	b.WriteString("\n\n")

	switch snap := d.ctrl.QuotaState(); snap.State {
	case wizard.LoadPending:
		b.WriteString(d.theme.Dim.Render("  Checking account quota..."))
		b.WriteString("\n")
	case wizard.LoadFailed:
		b.WriteString(d.theme.Error.Render("  Could not load account quota: " + snap.Err.Error()))
		b.WriteString("\n")
	default:
		if strings.TrimSpace(d.ctrl.Draft().Name) == "" {
			b.WriteString(d.theme.Dim.Render("  A server name is required to continue."))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (d *DetailsScreen) StatusHints() []KeyHint {
	hints := []KeyHint{
		{Key: "tab", Desc: "switch field"},
		{Key: "enter", Desc: "continue"},
	}

	if d.ctrl.QuotaState().State == wizard.LoadFailed {
		hints = append(hints, KeyHint{Key: "r", Desc: "retry quota"})
	}

	return append(hints, KeyHint{Key: "ctrl+c", Desc: "quit"})
}

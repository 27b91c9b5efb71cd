package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/wizard"
)

// SoftwareScreen picks the server image from the panel catalog.
type SoftwareScreen struct {
	theme  Theme
	ctrl   *wizard.Controller
	cursor int
	width  int
}

// NewSoftwareScreen creates the image-selection screen.
func NewSoftwareScreen(theme Theme, ctrl *wizard.Controller) *SoftwareScreen {
	return &SoftwareScreen{theme: theme, ctrl: ctrl}
}

func (s *SoftwareScreen) Init() tea.Cmd {
	return nil
}

// Cursor returns the selected list index, for tests.
func (s *SoftwareScreen) Cursor() int {
	return s.cursor
}

func (s *SoftwareScreen) eggs() []api.Egg {
	snap := s.ctrl.EggsState()
	if snap.State != wizard.LoadReady {
		return nil
	}

	return snap.Value
}

func (s *SoftwareScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case stateChangedMsg:
		if eggs := s.eggs(); s.cursor >= len(eggs) {
			s.cursor = 0
		}

		return s, nil

	case tea.KeyMsg:
		eggs := s.eggs()

		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(eggs)-1 {
				s.cursor++
			}
		case "enter":
			if len(eggs) > 0 {
				s.ctrl.SelectEgg(eggs[s.cursor].EggID)
				return s, func() tea.Msg { return advanceMsg{} }
			}
		case "esc":
			return s, func() tea.Msg { return retreatMsg{} }
		case "r":
			if s.ctrl.EggsState().State == wizard.LoadFailed {
				s.ctrl.RetryEggs()
			}
		}
	}

	return s, nil
}

func (s *SoftwareScreen) View() string {
	snap := s.ctrl.EggsState()

	switch snap.State {
	case wizard.LoadPending:
		return "\n" + s.theme.Dim.Render("  Loading image catalog...") + "\n"
	case wizard.LoadFailed:
		return "\n" + s.theme.Error.Render("  Could not load image catalog: "+snap.Err.Error()) + "\n"
	}

	if len(snap.Value) == 0 {
		return "\n" + s.theme.Dim.Render("  No images are available on this panel.") + "\n"
	}

	selected := s.ctrl.Draft().EggID

	var b strings.Builder
	b.WriteString("\n")

	for i, egg := range snap.Value {
		marker := " "
		if egg.EggID == selected {
			marker = "*"
		}

		line := fmt.Sprintf("%s %s", marker, egg.Name)
		if i == s.cursor {
			b.WriteString(s.theme.Cursor.Render("> " + line))
			if egg.Description != "" {
				b.WriteString(s.theme.Dim.Render("  " + egg.Description))
			}
		} else {
			b.WriteString(s.theme.Normal.Render("  " + line))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (s *SoftwareScreen) StatusHints() []KeyHint {
	if s.ctrl.EggsState().State == wizard.LoadFailed {
		return []KeyHint{
			{Key: "r", Desc: "retry"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	return []KeyHint{
		{Key: "↑/↓", Desc: "select"},
		{Key: "enter", Desc: "choose"},
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

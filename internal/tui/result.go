package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/api"
)

// ResultScreen shows the outcome of a successful server creation.
type ResultScreen struct {
	theme  Theme
	server api.Server
}

// NewResultScreen creates the final confirmation screen.
func NewResultScreen(theme Theme, server api.Server) *ResultScreen {
	return &ResultScreen{theme: theme, server: server}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "q", "esc":
			return r, tea.Quit
		}
	}

	return r, nil
}

func (r *ResultScreen) View() string {
	out := "\n" + r.theme.Completed.Render("  ✓ Server created") + "\n\n" +
		"  Name:       " + r.theme.Value.Render(r.server.Name) + "\n" +
		"  Identifier: " + r.theme.Value.Render(r.server.Identifier) + "\n"

	return out
}

func (r *ResultScreen) StatusHints() []KeyHint {
	return []KeyHint{{Key: "enter", Desc: "exit"}}
}

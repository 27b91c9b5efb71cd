package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// BlockedScreen is shown when the account quota leaves no room for
// another server.
type BlockedScreen struct {
	theme Theme
}

// NewBlockedScreen creates the quota-exhausted screen.
func NewBlockedScreen(theme Theme) *BlockedScreen {
	return &BlockedScreen{theme: theme}
}

func (b *BlockedScreen) Init() tea.Cmd {
	return nil
}

func (b *BlockedScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "q", "esc":
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *BlockedScreen) View() string {
	return "\n" +
		b.theme.Error.Render("  Your account quota does not allow creating another server.") + "\n\n" +
		b.theme.Dim.Render("  Delete an existing server or contact your panel administrator.") + "\n"
}

func (b *BlockedScreen) StatusHints() []KeyHint {
	return []KeyHint{{Key: "enter", Desc: "exit"}}
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelctl/panelctl/internal/wizard"
)

var resourceDims = []wizard.Dimension{
	wizard.DimMemory,
	wizard.DimDisk,
	wizard.DimCPU,
	wizard.DimDatabases,
	wizard.DimAllocations,
}

// ResourcesScreen adjusts the per-server resource limits within the
// account quota.
type ResourcesScreen struct {
	theme  Theme
	ctrl   *wizard.Controller
	cursor int
	width  int
}

// NewResourcesScreen creates the resource-limits screen.
func NewResourcesScreen(theme Theme, ctrl *wizard.Controller) *ResourcesScreen {
	return &ResourcesScreen{theme: theme, ctrl: ctrl}
}

func (r *ResourcesScreen) Init() tea.Cmd {
	return nil
}

// Cursor returns the selected dimension index, for tests.
func (r *ResourcesScreen) Cursor() int {
	return r.cursor
}

func (r *ResourcesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j":
			if r.cursor < len(resourceDims)-1 {
				r.cursor++
			}
		case "left", "h":
			r.adjust(-1)
		case "right", "l":
			r.adjust(1)
		case "enter":
			return r, func() tea.Msg { return advanceMsg{} }
		case "esc":
			return r, func() tea.Msg { return retreatMsg{} }
		}
	}

	return r, nil
}

func (r *ResourcesScreen) adjust(direction int) {
	snap := r.ctrl.QuotaState()
	if snap.State != wizard.LoadReady {
		return
	}

	dim := resourceDims[r.cursor]
	bounds := wizard.BoundsFor(snap.Value, dim)
	current := r.draftValue(dim)
	r.ctrl.SetResource(dim, bounds.Clamp(current+direction*bounds.Step))
}

func (r *ResourcesScreen) draftValue(dim wizard.Dimension) int {
	draft := r.ctrl.Draft()

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

func dimensionLabel(dim wizard.Dimension) string {
	switch dim {
	case wizard.DimMemory:
		return "Memory"
	case wizard.DimDisk:
		return "Disk"
	case wizard.DimCPU:
		return "CPU"
	case wizard.DimDatabases:
		return "Databases"
	default:
		return "Allocations"
	}
}

func formatResource(dim wizard.Dimension, value int) string {
	switch dim {
	case wizard.DimMemory, wizard.DimDisk:
		return fmt.Sprintf("%d MB", value)
	case wizard.DimCPU:
		return fmt.Sprintf("%d%%", value)
	default:
		return fmt.Sprintf("%d", value)
	}
}

func (r *ResourcesScreen) View() string {
	snap := r.ctrl.QuotaState()
	if snap.State != wizard.LoadReady {
		return "\n" + r.theme.Dim.Render("  Waiting for account quota...") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, dim := range resourceDims {
		bounds := wizard.BoundsFor(snap.Value, dim)
		value := formatResource(dim, r.draftValue(dim))
		limit := formatResource(dim, bounds.Max)

		line := fmt.Sprintf("%-12s %s", dimensionLabel(dim), value)
		if i == r.cursor {
			b.WriteString(r.theme.Cursor.Render("> " + line))
			b.WriteString(r.theme.Dim.Render(fmt.Sprintf("  (max %s)", limit)))
		} else {
			b.WriteString(r.theme.Normal.Render("  " + line))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (r *ResourcesScreen) StatusHints() []KeyHint {
	return []KeyHint{
		{Key: "↑/↓", Desc: "select"},
		{Key: "←/→", Desc: "adjust"},
		{Key: "enter", Desc: "continue"},
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

package tui

import "strings"

// BreadcrumbStep represents one wizard step in the breadcrumb bar.
type BreadcrumbStep struct {
	Label     string // step name (e.g., "Resources")
	Value     string // shown instead of Label when completed (e.g., "1024 MB")
	Active    bool
	Completed bool
}

// RenderBreadcrumb renders the breadcrumb bar from a list of steps.
//
// Completed steps show their Value (or Label if Value is empty) in green
// with a check mark. The active step is bold cyan. Future steps are dim.
func RenderBreadcrumb(theme Theme, steps []BreadcrumbStep) string {
	var parts []string

	for _, step := range steps {
		switch {
		case step.Completed:
			display := step.Label
			if step.Value != "" {
				display = step.Value
			}

			parts = append(parts, theme.Completed.Render(display+" ✓"))
		case step.Active:
			parts = append(parts, theme.Active.Render(step.Label))
		default:
			parts = append(parts, theme.Dim.Render(step.Label))
		}
	}

	if len(parts) == 0 {
		return ""
	}

	sep := theme.BreadSep.Render(" › ")
	return strings.Join(parts, sep)
}

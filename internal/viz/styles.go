package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	field    lipgloss.Style
	focused  lipgloss.Style
	errLine  lipgloss.Style
	box      lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	bodyA    lipgloss.Style
	bodyB    lipgloss.Style
	keyHint  lipgloss.Style
	stats    lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(22),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		field:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Width(16).Padding(0, 1),
		focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BodyA).Width(16).Padding(0, 1),
		errLine: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		running:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		bodyA:    lipgloss.NewStyle().Foreground(t.BodyA),
		bodyB:    lipgloss.NewStyle().Foreground(t.BodyB),
		keyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		stats:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2),
		barFull:  lipgloss.NewStyle().Foreground(t.Accent),
		barEmpty: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// bar renders a fraction in [0, 1] as a width-cell bar.
func (s styles) bar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.barFull.Render(strings.Repeat("█", filled)) + s.barEmpty.Render(strings.Repeat("░", width-filled))
}

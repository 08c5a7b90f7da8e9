package widgets

import "github.com/charmbracelet/lipgloss"

// Box draws titled pane chrome around pre-rendered content.
type Box struct {
	Title   string
	Content string
}

func (b Box) Render(width int) string {
	if width <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(width - 2)
	return style.Render("[" + b.Title + "]\n" + b.Content)
}

// MetricCard is a single headline figure, e.g. "$3,000,000 USD".
type MetricCard struct {
	Label string
	Value string
}

func (m MetricCard) Render(width int) string {
	if width <= 0 {
		return ""
	}
	label := lipgloss.NewStyle().Faint(true).Render(m.Label)
	value := lipgloss.NewStyle().Bold(true).Render(m.Value)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width - 2).
		Render(label + "\n" + value)
}

package viz

import "github.com/charmbracelet/lipgloss"

// Body colors follow the original plot: red, green, blue.
var (
	Body1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	Body2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	Body3Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	AxesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	FailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	CanvasStyle = lipgloss.NewStyle().Padding(0, 1)
	StatsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(40)
)

// BodyLegend renders the colored body labels shown under plots.
func BodyLegend() string {
	return Body1Style.Render("— body 1") + "  " +
		Body2Style.Render("— body 2") + "  " +
		Body3Style.Render("— body 3")
}

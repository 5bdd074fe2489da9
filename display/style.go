package display

import "github.com/charmbracelet/lipgloss"

var (
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorSaved  = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"} // emerald
)

var (
	styleTitle     = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta      = lipgloss.NewStyle().Foreground(colorDim)
	styleSaved     = lipgloss.NewStyle().Foreground(colorSaved).Bold(true)
	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
	styleGridIndex = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	styleGridCell  = lipgloss.NewStyle().Padding(0, 1)
)

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	addColor    = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	removeColor = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	updateColor = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFCA28"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	accentColor = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
)

// Styles used by the terminal renderer
var (
	AddStyle     = lipgloss.NewStyle().Foreground(addColor)
	RemoveStyle  = lipgloss.NewStyle().Foreground(removeColor)
	UpdateStyle  = lipgloss.NewStyle().Foreground(updateColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(updateColor)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(removeColor)
)

// StyleDiffLine colors one line produced by the diff presenter. Change
// lines start with +, - or ~; managed block diffs are indented.
func StyleDiffLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	nested := len(trimmed) != len(line)

	switch {
	case trimmed == "":
		return line
	case nested && (strings.HasPrefix(trimmed, "+++") || strings.HasPrefix(trimmed, "---")):
		return MutedStyle.Render(line)
	case nested && strings.HasPrefix(trimmed, "@@"):
		return HeaderStyle.Render(line)
	case trimmed[0] == '+':
		return AddStyle.Render(line)
	case trimmed[0] == '-':
		return RemoveStyle.Render(line)
	case trimmed[0] == '~':
		return UpdateStyle.Render(line)
	case nested:
		return MutedStyle.Render(line)
	default:
		return line
	}
}

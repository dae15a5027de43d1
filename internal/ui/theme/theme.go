package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the semantic colors and styles for terminal output
type Theme struct {
	// Colors
	Primary lipgloss.AdaptiveColor
	Subtle  lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor

	// Styles
	TitleStyle       lipgloss.Style
	DescriptionStyle lipgloss.Style
	BranchStyle      lipgloss.Style
	HashStyle        lipgloss.Style
	OpenStyle        lipgloss.Style
	DoneStyle        lipgloss.Style
	NoteStyle        lipgloss.Style
}

// DefaultTheme creates a default theme
func DefaultTheme() *Theme {
	primary := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	success := lipgloss.AdaptiveColor{Light: "#00A000", Dark: "#2ECC40"}
	warning := lipgloss.AdaptiveColor{Light: "#FFA500", Dark: "#FF851B"}

	return &Theme{
		Primary: primary,
		Subtle:  subtle,
		Success: success,
		Warning: warning,

		TitleStyle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		DescriptionStyle: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		BranchStyle: lipgloss.NewStyle().Foreground(subtle),

		HashStyle: lipgloss.NewStyle().Foreground(subtle),

		OpenStyle: lipgloss.NewStyle(),

		DoneStyle: lipgloss.NewStyle().
			Foreground(success).
			Strikethrough(true),

		NoteStyle: lipgloss.NewStyle().Foreground(warning),
	}
}

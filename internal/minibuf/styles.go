package minibuf

import "github.com/charmbracelet/lipgloss"

// Colors reference the terminal's 16-color palette so the selector
// follows the user's theme.
var (
	colorCyan   = lipgloss.Color("12") // Prompt
	colorYellow = lipgloss.Color("11") // Selected candidate
	colorGray   = lipgloss.Color("8")  // Dim/secondary (counter, no-match notice)
)

// Styles holds the lipgloss styles used to render the selector.
type Styles struct {
	Prompt    lipgloss.Style
	Selected  lipgloss.Style
	Candidate lipgloss.Style
	Counter   lipgloss.Style
	Notice    lipgloss.Style
}

// DefaultStyles returns the default selector styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		Candidate: lipgloss.NewStyle(),
		Counter:   lipgloss.NewStyle().Foreground(colorGray),
		Notice:    lipgloss.NewStyle().Foreground(colorGray).Italic(true),
	}
}

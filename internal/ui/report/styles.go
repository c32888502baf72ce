package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#475569"))
)

// Styles decides whether output is decorated. The zero value is plain.
type Styles struct {
	Color bool
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.Color {
		return text
	}
	return st.Render(text)
}

func (s Styles) Heading(text string) string { return s.render(headingStyle, text) }
func (s Styles) Error(text string) string   { return s.render(errorStyle, text) }
func (s Styles) Warn(text string) string    { return s.render(warnStyle, text) }
func (s Styles) Success(text string) string { return s.render(successStyle, text) }
func (s Styles) Muted(text string) string   { return s.render(mutedStyle, text) }

package tui

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 80
)

// Style holds the lipgloss styles of the session view.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Focus     lipgloss.Style
	Done      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyle returns the styles for a dark or light terminal.
func NewStyle(darkTheme bool) Style {
	main := lipgloss.Color("#1E1E1E")
	secondary := lipgloss.Color("#5A5A5A")
	accent := lipgloss.Color("#0B7A75")

	if darkTheme {
		main = lipgloss.Color("#F5F5F5")
		secondary = lipgloss.Color("#A0A0A0")
		accent = lipgloss.Color("#B0DB43")
	}

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Main:      lipgloss.NewStyle().Foreground(main).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(secondary),
		Hint:      lipgloss.NewStyle().Foreground(secondary).Italic(true),
		Focus:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		Done:      lipgloss.NewStyle().Foreground(secondary).Strikethrough(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true),
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/apsetup/internal/version"
)

// AppName is shown in the header of every screen.
const AppName = "DEVICE SETUP"

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	labelWidth       = 14
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red

	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#626262")
	BorderColor    = lipgloss.Color("#7D56F4")
	HighlightColor = lipgloss.Color("#43BF6D")
)

var (
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(SubtleColor)

	FocusedLabelStyle = LabelStyle.
				Foreground(HighlightColor).
				Bold(true)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(labelWidth + 2)

	// Error banner
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Hand-off notification
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 3)

	FocusedButtonStyle = ButtonStyle.
				Background(HighlightColor).
				Bold(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 3)

	SavedButtonStyle = ButtonStyle.
				Background(SecondaryColor).
				Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	WarningStatusStyle = lipgloss.NewStyle().
				Foreground(WarningColor)
)

func buildHeaderContent(target string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(target)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderContainer wraps content with the header and a footer carrying help
// text, filling the terminal. Before the first WindowSizeMsg it renders
// without a frame.
func renderContainer(content, target, footer string, width, height int) string {
	header := buildHeaderContent(target)
	if width < MinTerminalWidth {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", content, "", footer)
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(width-4).
		Padding(1, 1)

	inner := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(StatusStyle.Render(footer)),
	)

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		AlignVertical(lipgloss.Top)
	if height > 2 {
		frame = frame.Height(height - 2)
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, frame.Render(inner))
}

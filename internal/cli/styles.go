// Package cli provides styled terminal output for the non-interactive
// commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
)

// Colors shared with the default TUI theme.
var (
	PrimaryColor = lipgloss.Color("#1565C0")
	SuccessColor = lipgloss.Color("#2E7D32")
	WarningColor = lipgloss.Color("#EF6C00")
	ErrorColor   = lipgloss.Color("#C62828")
	InfoColor    = lipgloss.Color("#0277BD")
	SubtleColor  = lipgloss.Color("#757575")
	BorderColor  = lipgloss.Color("#455A64")
)

var (
	// TitleStyle renders box titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames each result section.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	// LabelStyle pads stat labels so their values line up.
	LabelStyle = lipgloss.NewStyle().Foreground(SubtleColor).Width(26)
)

// Message icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	InfoIcon    = "i"
)

// ToneStyle colors a value by the tone its renderer gave it.
func ToneStyle(tone render.Tone) lipgloss.Style {
	switch tone {
	case render.TonePositive:
		return SuccessStyle
	case render.ToneNegative:
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// FramingStyle colors the gap headline: a shortfall is a warning, a met
// goal is a success.
func FramingStyle(framing render.Framing) lipgloss.Style {
	if framing == render.FramingGoalMet {
		return SuccessStyle.Bold(true)
	}
	return WarningStyle.Bold(true)
}

func message(style lipgloss.Style, icon, text string) string {
	return style.Render(icon + " " + text)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(text string) string { return message(SuccessStyle, SuccessIcon, text) }

// FormatError formats an error message with icon.
func FormatError(text string) string { return message(ErrorStyle, ErrorIcon, text) }

// FormatWarning formats a warning message with icon.
func FormatWarning(text string) string { return message(WarningStyle, WarningIcon, text) }

// FormatInfo formats an info message with icon.
func FormatInfo(text string) string { return message(InfoStyle, InfoIcon, text) }

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), content))
}

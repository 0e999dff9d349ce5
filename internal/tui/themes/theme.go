// Package themes defines the color schemes of the planner UI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Bold         lipgloss.Style
	Faint        lipgloss.Style
	Box          lipgloss.Style
	RoundedBox   lipgloss.Style
	Banner       lipgloss.Style
	StepActive   lipgloss.Style
	StepDone     lipgloss.Style
	StepUpcoming lipgloss.Style
	Label        lipgloss.Style
	Focused      lipgloss.Style
	Button       lipgloss.Style
	ButtonOff    lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	Positive     lipgloss.Style
	Negative     lipgloss.Style
	StatusInfo   lipgloss.Style
	Primary      lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
	Foreground   lipgloss.Color
	Success      lipgloss.Color
	Error        lipgloss.Color
}

type palette struct {
	primary, muted, border, fg, subtle, success, errorc, info, onPrimary string
}

func build(p palette) Theme {
	primary := lipgloss.Color(p.primary)
	muted := lipgloss.Color(p.muted)
	border := lipgloss.Color(p.border)
	fg := lipgloss.Color(p.fg)
	success := lipgloss.Color(p.success)
	errc := lipgloss.Color(p.errorc)

	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Success:    success,
		Error:      errc,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Faint: lipgloss.NewStyle().
			Foreground(muted),
		Box: lipgloss.NewStyle().
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(errc).
			Foreground(errc).
			Bold(true).
			PaddingLeft(1),
		StepActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.onPrimary)).
			Background(primary).
			Bold(true).
			Padding(0, 1),
		StepDone: lipgloss.NewStyle().
			Foreground(success).
			Padding(0, 1),
		StepUpcoming: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Width(24),
		Focused: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.onPrimary)).
			Background(primary).
			Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().
			Foreground(muted).
			Background(border).
			Padding(0, 2),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().
			Foreground(fg).
			Padding(0, 1),
		Positive: lipgloss.NewStyle().
			Foreground(success).
			Padding(0, 1),
		Negative: lipgloss.NewStyle().
			Foreground(errc).
			Padding(0, 1),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:   "#1565C0",
	muted:     "#737373",
	border:    "#404040",
	fg:        "#fafafa",
	subtle:    "#a3a3a3",
	success:   "#2E7D32",
	errorc:    "#E53935",
	info:      "#2196F3",
	onPrimary: "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:   "#89b4fa",
	muted:     "#6c7086",
	border:    "#45475a",
	fg:        "#cdd6f4",
	subtle:    "#a6adc8",
	success:   "#a6e3a1",
	errorc:    "#f38ba8",
	info:      "#89dceb",
	onPrimary: "#1e1e2e",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

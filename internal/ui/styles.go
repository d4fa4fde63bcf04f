package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#b08d57") // brass
	ColorSecondary  = lipgloss.Color("#3e7c7a") // lagoon
	ColorBackground = lipgloss.Color("#1b1a18") // espresso
	ColorText       = lipgloss.Color("#e3ded6") // linen
	ColorMuted      = lipgloss.Color("#9a958c") // stone
	ColorSuccess    = lipgloss.Color("#6e9f62") // olive
	ColorError      = lipgloss.Color("#b5533c") // terracotta
	ColorWarning    = lipgloss.Color("#d4a24c") // saffron
	ColorBorder     = lipgloss.Color("#3a3631")
)

// --- Reusable Styles ---

var (
	BannerStyle      lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	NormalStyle      lipgloss.Style
	MutedStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	HeaderStyle      lipgloss.Style
	BadgeStyle       lipgloss.Style
)

func init() { buildStyles() }

// ApplyTheme switches to the light palette for theme "light". Anything
// else selects the dark one.
func ApplyTheme(name string) {
	if name == "light" {
		ColorBackground = lipgloss.Color("#f6f1e9")
		ColorText = lipgloss.Color("#2b2824")
		ColorMuted = lipgloss.Color("#6f6a62")
		ColorBorder = lipgloss.Color("#cfc6b8")
	} else {
		ColorBackground = lipgloss.Color("#1b1a18")
		ColorText = lipgloss.Color("#e3ded6")
		ColorMuted = lipgloss.Color("#9a958c")
		ColorBorder = lipgloss.Color("#3a3631")
	}
	buildStyles()
}

func buildStyles() {
	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)
}

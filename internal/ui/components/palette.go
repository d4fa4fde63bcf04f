package components

import "github.com/charmbracelet/lipgloss"

// Component colors. The ui package keeps its own copies for tab styles.
var (
	colorBrand      = lipgloss.Color("#b08d57") // brass
	colorTeal       = lipgloss.Color("#3e7c7a")
	colorText       = lipgloss.Color("#e3ded6")
	colorMuted      = lipgloss.Color("#9a958c")
	colorBorder     = lipgloss.Color("#3a3631")
	colorInk        = lipgloss.Color("#1b1a18")
	colorKeyCap     = lipgloss.Color("#a39e93")
	colorRowBg      = lipgloss.Color("#2a2723")
	colorDanger     = lipgloss.Color("#b5533c")
	colorDangerText = lipgloss.Color("#e0b8ad")
	colorOn         = lipgloss.Color("#6e9f62")
)

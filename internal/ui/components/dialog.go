package components

import "github.com/charmbracelet/lipgloss"

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(44)
	dialogDangerStyle = dialogStyle.BorderForeground(colorDanger)
	dialogInputStyle  = lipgloss.NewStyle().Foreground(colorTeal)
)

// ConfirmDialog renders a yes/no question. Destructive confirmations get
// the danger border.
func ConfirmDialog(title, message string, destructive bool) string {
	style := dialogStyle
	if destructive {
		style = dialogDangerStyle
	}
	return style.Render(
		titleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
			mutedStyle.Render(SanitizeText(message)) + "\n\n" +
			mutedStyle.Render("y: confirm | n: cancel"),
	)
}

// InputDialog renders a one-line text prompt.
func InputDialog(title, input string) string {
	return dialogStyle.Render(
		titleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
			dialogInputStyle.Render("> "+SanitizeOneLine(input)+"█") + "\n\n" +
			mutedStyle.Render("enter: apply | esc: cancel"),
	)
}

package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	panelActiveStyle = panelStyle.BorderForeground(colorBrand)

	panelDangerStyle = panelStyle.BorderForeground(colorDanger)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	dangerTitleStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	dangerBodyStyle = lipgloss.NewStyle().
			Foreground(colorDangerText)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTeal).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// panelWidth is the outer width of a panel on a terminal of the given
// width: about three quarters of it, between 40 and 96 columns, never wider
// than the terminal.
func panelWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	w := termWidth * 3 / 4
	w = max(w, 40)
	w = min(w, 96)
	return min(w, termWidth)
}

// blockWidth is the style width for a panel: lipgloss draws the border
// outside of it.
func blockWidth(termWidth int) int {
	return max(panelWidth(termWidth)-2, 0)
}

// ContentWidth is the usable width inside a panel, without border and
// padding.
func ContentWidth(termWidth int) int {
	w := panelWidth(termWidth)
	if w <= 6 {
		return 0
	}
	return w - 6
}

// Box renders content in a plain panel.
func Box(content string, width int) string {
	return panelStyle.Width(blockWidth(width)).Render(content)
}

// ActiveBox renders content in a highlighted panel, used for open forms.
func ActiveBox(content string, width int) string {
	return panelActiveStyle.Width(blockWidth(width)).Render(content)
}

// ErrorBox renders a danger panel.
func ErrorBox(title, message string, width int) string {
	body := dangerBodyStyle.Render(message)
	if title != "" {
		body = dangerTitleStyle.Render(title) + "\n\n" + body
	}
	return panelDangerStyle.Width(blockWidth(width)).Render(body)
}

// TitledBox renders a panel with its title set into the top border.
func TitledBox(title, content string, width int) string {
	return withBorderTitle(panelStyle.Width(blockWidth(width)).Render(content), title, colorBorder)
}

// TitledActiveBox is TitledBox with the highlighted border.
func TitledActiveBox(title, content string, width int) string {
	return withBorderTitle(panelActiveStyle.Width(blockWidth(width)).Render(content), title, colorBrand)
}

func withBorderTitle(boxed, title string, edgeColor lipgloss.Color) string {
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	outer := lipgloss.Width(lines[0])
	if outer < 6 {
		return boxed
	}
	border := lipgloss.RoundedBorder()
	inner := outer - 2
	label := truncateRunes(fmt.Sprintf(" %s ", SanitizeOneLine(title)), inner-2)
	rest := inner - 2 - lipgloss.Width(label)

	edge := lipgloss.NewStyle().Foreground(edgeColor)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, 2)) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, max(rest, 0))+border.TopRight)
	return strings.Join(lines, "\n")
}

// ClampTextWidth sanitizes text to one line and truncates it to width
// columns.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// InfoRow renders "label: value" for detail panels.
func InfoRow(label, value string) string {
	return mutedStyle.Render(SanitizeOneLine(label)+": ") + valueStyle.Render(SanitizeOneLine(value))
}

// TableRow is one label/value line of a Table.
type TableRow struct {
	Label string
	Value string
}

// Table renders aligned label/value rows in a titled panel. Labels take at
// most a third of the content width.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(SanitizeOneLine(r.Label)))
	}
	valueWidth := 0
	if cw := ContentWidth(width); cw > 0 {
		labelWidth = min(labelWidth, max(cw/3, 4))
		valueWidth = max(cw-labelWidth-2, 4)
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		label := padRight(ClampTextWidth(r.Label, labelWidth), labelWidth)
		lines[i] = labelStyle.Render(label) + "  " + valueStyle.Render(ClampTextWidth(r.Value, valueWidth))
	}
	return TitledBox(title, strings.Join(lines, "\n"), width)
}

// Indent prefixes every line with spaces.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// CenterLine centers one line within the panel width.
func CenterLine(s string, width int) string {
	w := panelWidth(width)
	lw := lipgloss.Width(s)
	if w <= 0 || lw >= w {
		return s
	}
	return strings.Repeat(" ", (w-lw)/2) + s
}

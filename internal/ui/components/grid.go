package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GridColumn is one column of a Grid. Width is the cell width without
// separators.
type GridColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const gridIndent = 2

var (
	gridRuleStyle   = lipgloss.NewStyle().Foreground(colorBorder)
	gridHeaderStyle = labelStyle
	gridActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorRowBg).
			Bold(true)
	gridOnStyle = lipgloss.NewStyle().Foreground(colorOn).Bold(true)
)

// Grid renders rows under a header line and a rule. The row at active is
// highlighted; pass -1 for none. The last column absorbs any difference
// between the column widths and width.
func Grid(columns []GridColumn, rows [][]string, width, active int) string {
	if width <= 0 || len(columns) == 0 {
		return ""
	}
	border := lipgloss.RoundedBorder()
	cols := fitColumns(columns, width)

	lines := make([]string, 0, len(rows)+2)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	lines = append(lines, gridLine(cols, header, border.Left, gridHeaderStyle, width))

	var rule strings.Builder
	rule.WriteString(strings.Repeat(" ", gridIndent))
	for i, c := range cols {
		if i > 0 {
			rule.WriteString(border.Middle)
		}
		rule.WriteString(strings.Repeat(border.Top, c.Width))
	}
	lines = append(lines, gridRuleStyle.Render(padRight(rule.String(), width)))

	for i, row := range rows {
		style := lipgloss.NewStyle()
		if i == active {
			style = gridActiveStyle
		}
		lines = append(lines, gridLine(cols, row, border.Left, style, width))
	}
	return strings.Join(lines, "\n")
}

func fitColumns(columns []GridColumn, width int) []GridColumn {
	cols := make([]GridColumn, len(columns))
	copy(cols, columns)
	used := gridIndent + len(cols) - 1
	for i := range cols {
		cols[i].Width = max(cols[i].Width, 1)
		used += cols[i].Width
	}
	last := &cols[len(cols)-1]
	last.Width = max(last.Width+width-used, 1)
	return cols
}

func gridLine(cols []GridColumn, cells []string, sep string, style lipgloss.Style, width int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridIndent))
	for i, c := range cols {
		if i > 0 {
			b.WriteString(gridRuleStyle.Inline(true).Render(sep))
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := style.Inline(true).Render(alignCell(text, c.Width, c.Align))
		b.WriteString(strings.ReplaceAll(cell, "●", gridOnStyle.Render("●")))
	}
	return padRight(b.String(), width)
}

func alignCell(text string, width int, align lipgloss.Position) string {
	text = ClampTextWidth(text, width)
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", gap) + text
	case lipgloss.Center:
		return strings.Repeat(" ", gap/2) + text + strings.Repeat(" ", gap-gap/2)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

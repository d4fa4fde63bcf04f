package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
	keyCapStyle   = lipgloss.NewStyle().
			Foreground(colorInk).
			Background(colorKeyCap).
			Bold(true).
			Padding(0, 1)
	hintGap = "  "
)

// Hint formats one key binding, for example "Scroll ↑/↓".
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar lays hints out in centered rows no wider than width. With no
// width the hints go on one line.
func StatusBar(hints []string, width int) string {
	if len(hints) == 0 {
		return ""
	}
	rows := wrapSegments(hints, width)
	block := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// wrapSegments greedily packs segments into rows of at most width columns.
// A single segment wider than width gets a row of its own.
func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{strings.Join(segments, hintGap)}
	}
	var (
		rows    []string
		current []string
		used    int
	)
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		extra := w
		if len(current) > 0 {
			extra += len(hintGap)
		}
		if len(current) > 0 && used+extra > width {
			rows = append(rows, strings.Join(current, hintGap))
			current, used = nil, 0
			extra = w
		}
		current = append(current, seg)
		used += extra
	}
	if len(current) > 0 {
		rows = append(rows, strings.Join(current, hintGap))
	}
	return rows
}

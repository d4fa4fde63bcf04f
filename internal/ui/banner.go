package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ███████╗██╗     ██╗   ██╗██╗██████╗  █████╗
 ██╔════╝██║     ██║   ██║██║██╔══██╗██╔══██╗
 █████╗  ██║     ██║   ██║██║██████╔╝███████║
 ██╔══╝  ██║     ╚██╗ ██╔╝██║██╔══██╗██╔══██║
 ███████╗███████╗ ╚████╔╝ ██║██║  ██║██║  ██║
 ╚══════╝╚══════╝  ╚═══╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerSubtitle = "Hotel Concierge • Front Desk Dashboard"

// RenderBanner returns the styled banner. hotelID, when set, is shown
// under the subtitle.
func RenderBanner(hotelID string) string {
	art := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")
	width := lipgloss.Width(bannerSubtitle)
	for _, line := range art {
		width = max(width, lipgloss.Width(line))
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range art {
		b.WriteString(BannerStyle.Render(line))
		b.WriteString("\n")
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	b.WriteString("\n")
	b.WriteString(center.Foreground(ColorMuted).Render(bannerSubtitle))
	if hotelID != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(ColorSecondary).Render("hotel " + hotelID))
	}
	b.WriteString("\n")
	return b.String()
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui/components"
)

const portalTable = "portal"

// PortalModel previews what guests see: available amenities, recommended
// places and emergency contacts. It reads the stores of the other tabs and
// never mutates them.
type PortalModel struct {
	amenities *crud.Store[hotel.Amenity]
	places    *crud.Store[hotel.Place]
	contacts  *crud.Store[hotel.EmergencyContact]

	searching bool
	term      string
	width     int
	height    int
}

func NewPortalModel(amenities *crud.Store[hotel.Amenity], places *crud.Store[hotel.Place], contacts *crud.Store[hotel.EmergencyContact]) PortalModel {
	return PortalModel{amenities: amenities, places: places, contacts: contacts}
}

func (m PortalModel) Init() tea.Cmd   { return nil }
func (m PortalModel) Title() string   { return "Portal" }
func (m PortalModel) Table() string   { return portalTable }
func (m PortalModel) Capturing() bool { return m.searching }
func (m PortalModel) Dirty() bool     { return false }

func (m PortalModel) SetSize(width, height int) tab {
	m.width = width
	m.height = height
	return m
}

func (m PortalModel) Portal() hotel.Portal {
	return hotel.BuildPortal(m.amenities.Items(), m.places.Items(), m.contacts.Items(), m.term)
}

func (m PortalModel) Update(msg tea.Msg) (tab, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.searching {
		switch {
		case isEnter(key):
			m.searching = false
		case isBack(key):
			m.searching = false
			m.term = ""
		case isBackspace(key):
			if r := []rune(m.term); len(r) > 0 {
				m.term = string(r[:len(r)-1])
			}
		default:
			m.term += typed(key)
		}
		return m, nil
	}
	switch {
	case isKey(key, "/"):
		m.searching = true
	case isKey(key, "c"):
		m.term = ""
	}
	return m, nil
}

func (m PortalModel) Hints() []string {
	if m.searching {
		return []string{
			components.Hint("enter", "Apply"),
			components.Hint("esc", "Clear"),
		}
	}
	return []string{
		components.Hint("/", "Search"),
		components.Hint("c", "Clear"),
	}
}

func (m PortalModel) View() string {
	width := viewWidth(m.width)
	p := m.Portal()

	var sections []string
	if m.searching {
		sections = append(sections, components.InputDialog("Search portal", m.term))
	} else if strings.TrimSpace(m.term) != "" {
		sections = append(sections, MutedStyle.Render("search: "+components.SanitizeOneLine(m.term)))
	}
	if p.Empty() {
		msg := "Nothing to show guests yet."
		if strings.TrimSpace(m.term) != "" {
			msg = "Nothing matches. Press c to clear."
		}
		sections = append(sections, components.Box(MutedStyle.Render(msg), width))
		return strings.Join(sections, "\n\n")
	}

	if len(p.Amenities) > 0 {
		rows := make([]components.TableRow, len(p.Amenities))
		for i, a := range p.Amenities {
			value := optionLabel(hotel.AmenityCategories, a.Category)
			if a.Price > 0 {
				value += fmt.Sprintf("  ·  %s", crud.Stringify(a.Price))
			}
			if a.Recommended {
				value += "  ·  ★"
			}
			rows[i] = components.TableRow{Label: a.Name, Value: value}
		}
		sections = append(sections, components.Table("Amenities", rows, width))
	}
	if len(p.Places) > 0 {
		rows := make([]components.TableRow, len(p.Places))
		for i, pl := range p.Places {
			parts := []string{optionLabel(hotel.PlaceCategories, pl.Category)}
			if pl.Rating > 0 {
				parts = append(parts, fmt.Sprintf("%.1f★", pl.Rating))
			}
			if pl.Address != "" {
				parts = append(parts, pl.Address)
			}
			rows[i] = components.TableRow{Label: pl.Name, Value: strings.Join(parts, "  ·  ")}
		}
		sections = append(sections, components.Table("Recommended places", rows, width))
	}
	if len(p.Contacts) > 0 {
		rows := make([]components.TableRow, len(p.Contacts))
		for i, c := range p.Contacts {
			rows[i] = components.TableRow{Label: c.Name, Value: c.Phone}
		}
		sections = append(sections, components.Table("Emergency contacts", rows, width))
	}
	return strings.Join(sections, "\n\n")
}

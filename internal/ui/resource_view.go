package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui/components"
)

// viewWidth falls back to a sensible width before the first resize.
func viewWidth(w int) int {
	if w <= 0 {
		return 100
	}
	return w
}

func (m ResourceModel[T]) View() string {
	var body string
	switch m.mgr.Modals.Kind() {
	case crud.ModalCreating, crud.ModalEditing:
		body = m.renderForm()
	case crud.ModalConfirmingDelete:
		body = m.renderDelete()
	case crud.ModalViewing:
		body = m.renderDetail()
	default:
		body = m.renderList()
		if m.searching {
			body = components.InputDialog("Search "+m.res.Title, m.searchBuf) + "\n\n" + body
		}
	}
	if m.errText != "" {
		body += "\n\n" + components.ErrorBox("Error", m.errText, viewWidth(m.width))
	}
	return body
}

func (m ResourceModel[T]) Hints() []string {
	switch m.mgr.Modals.Kind() {
	case crud.ModalCreating, crud.ModalEditing:
		return []string{
			components.Hint("↑/↓", "Field"),
			components.Hint("←/→", "Choose"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("esc", "Cancel"),
		}
	case crud.ModalConfirmingDelete:
		return []string{
			components.Hint("y", "Delete"),
			components.Hint("n", "Keep"),
		}
	case crud.ModalViewing:
		return []string{
			components.Hint("e", "Edit"),
			components.Hint("d", "Delete"),
			components.Hint("esc", "Back"),
		}
	}
	if m.searching {
		return []string{
			components.Hint("enter", "Apply"),
			components.Hint("esc", "Clear"),
		}
	}
	hints := []string{
		components.Hint("↑/↓", "Move"),
		components.Hint("enter", "Open"),
		components.Hint("n", "New"),
		components.Hint("e", "Edit"),
		components.Hint("d", "Delete"),
	}
	if len(m.res.Toggles) > 0 {
		hints = append(hints, components.Hint("space", "Toggle"))
		if len(m.res.Toggles) > 1 {
			hints = append(hints, components.Hint("t", "Field"))
		}
	}
	hints = append(hints,
		components.Hint("/", "Search"),
		components.Hint("f", "Filter"),
		components.Hint("s", "Sort"),
		components.Hint("v", "Layout"),
		components.Hint("c", "Clear"),
		components.Hint("r", "Reload"),
	)
	return hints
}

// --- List ---

func (m ResourceModel[T]) renderList() string {
	width := viewWidth(m.width)
	items := m.mgr.Projection()
	m.cursor.SetLen(len(items))

	var b strings.Builder
	b.WriteString(m.renderSummary(len(items)))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.mgr.Store.Len() == 0:
		b.WriteString(MutedStyle.Render("Loading " + strings.ToLower(m.res.Title) + "..."))
	case len(items) == 0 && m.mgr.View.HasActiveFilters():
		b.WriteString(MutedStyle.Render(fmt.Sprintf("No %s match. Press c to clear.", strings.ToLower(m.res.Title))))
	case len(items) == 0:
		b.WriteString(MutedStyle.Render(fmt.Sprintf("No %s yet. Press n to add one.", strings.ToLower(m.res.Title))))
	case m.mgr.View.Mode() == crud.ModeGrid:
		b.WriteString(m.renderCards(items, width))
	default:
		b.WriteString(m.renderRows(items, width))
	}
	return components.TitledBox(m.res.Title, b.String(), width)
}

func (m ResourceModel[T]) renderSummary(shown int) string {
	total := m.mgr.Store.Len()
	parts := []string{fmt.Sprintf("%d of %d", shown, total)}
	view := m.mgr.View
	if term := strings.TrimSpace(view.SearchTerm()); term != "" {
		parts = append(parts, "search: "+components.SanitizeOneLine(term))
	}
	if fv := view.FilterValue(); fv != "" {
		parts = append(parts, fmt.Sprintf("%s: %s", view.FilterField(), optionLabel(m.res.FilterOptions, fv)))
	}
	if key := view.SortKey(); key != "" {
		parts = append(parts, "sort: "+key+" "+sortArrow(view.Direction()))
	}
	if len(m.res.Toggles) > 0 {
		parts = append(parts, "space: "+m.res.Toggles[m.toggleIdx%len(m.res.Toggles)])
	}
	if n := m.mgr.Store.Pending(); n > 0 {
		parts = append(parts, fmt.Sprintf("saving %d", n))
	}
	return MutedStyle.Render(strings.Join(parts, "  ·  "))
}

func (m ResourceModel[T]) renderRows(items []T, width int) string {
	view := m.mgr.View
	columns := make([]components.GridColumn, len(m.res.Columns))
	for i, c := range m.res.Columns {
		header := c.Title
		if c.Key == view.SortKey() {
			header += " " + sortArrow(view.Direction())
		}
		columns[i] = components.GridColumn{Header: header, Width: c.Width, Align: lipgloss.Left}
	}

	start, end := m.cursor.Window()
	rows := make([][]string, 0, end-start)
	for _, item := range items[start:end] {
		rows = append(rows, m.cells(item))
	}
	out := components.Grid(columns, rows, components.ContentWidth(width), m.cursor.Index-start)
	if len(items) > end-start {
		out += "\n" + MutedStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(items)))
	}
	return out
}

func (m ResourceModel[T]) renderCards(items []T, width int) string {
	start, end := m.cursor.Window()
	cardWidth := components.ContentWidth(width) + 6
	cards := make([]string, 0, end-start)
	for i, item := range items[start:end] {
		cells := m.cells(item)
		details := make([]string, 0, len(cells))
		for j, c := range m.res.Columns {
			if cells[j] == "" {
				continue
			}
			details = append(details, c.Title+" "+cells[j])
		}
		body := NormalStyle.Render(components.SanitizeOneLine(m.label(item))) + "\n" +
			MutedStyle.Render(components.ClampTextWidth(strings.Join(details, "  ·  "), components.ContentWidth(cardWidth)))
		if start+i == m.cursor.Index {
			cards = append(cards, components.ActiveBox(body, cardWidth))
		} else {
			cards = append(cards, components.Box(body, cardWidth))
		}
	}
	return strings.Join(cards, "\n")
}

func (m ResourceModel[T]) cells(item T) []string {
	out := make([]string, len(m.res.Columns))
	for i, c := range m.res.Columns {
		out[i] = cellText(crud.FieldValue(item, c.Key))
	}
	return out
}

func cellText(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "●"
		}
		return "○"
	}
	return components.SanitizeOneLine(crud.Stringify(v))
}

func sortArrow(d crud.SortDirection) string {
	if d == crud.Descending {
		return "↓"
	}
	return "↑"
}

func optionLabel(options []crud.Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// --- Detail / Delete ---

func (m ResourceModel[T]) renderDetail() string {
	target, ok := m.mgr.Modals.ViewTarget()
	if !ok {
		return ""
	}
	rows := make([]components.TableRow, 0, len(m.res.Fields)+1)
	for _, f := range m.res.Fields {
		v := crud.FieldValue(target, f.Key)
		text := crud.Stringify(v)
		switch {
		case f.Kind == crud.KindCheckbox:
			text = "no"
			if checked(v) {
				text = "yes"
			}
		case len(f.Options) > 0:
			text = optionLabel(f.Options, text)
		}
		if text == "" {
			text = "-"
		}
		rows = append(rows, components.TableRow{Label: f.Label, Value: text})
	}
	if created := crud.Stringify(crud.FieldValue(target, "created_at")); created != "" {
		rows = append(rows, components.TableRow{Label: "Created", Value: created})
	}
	return components.Table(m.label(target), rows, viewWidth(m.width))
}

func (m ResourceModel[T]) renderDelete() string {
	target, ok := m.mgr.Modals.DeleteTarget()
	if !ok {
		return ""
	}
	msg := fmt.Sprintf("Delete %s %q? This cannot be undone.", m.res.Singular, m.label(target))
	return components.ConfirmDialog("Delete "+m.res.Singular, msg, true)
}

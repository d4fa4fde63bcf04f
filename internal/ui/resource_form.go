package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui/components"
)

// --- Form Keys ---

func (m ResourceModel[T]) handleFormKeys(msg tea.KeyMsg) (tab, tea.Cmd) {
	form := m.mgr.Form
	if form.Submitting() {
		return m, nil
	}
	fields := form.Fields()
	if len(fields) == 0 {
		if isBack(msg) {
			m.mgr.Close()
		}
		return m, nil
	}
	m.focus = min(max(m.focus, 0), len(fields)-1)
	field := fields[m.focus]

	switch {
	case isBack(msg):
		m.errText = ""
		m.focus = 0
		m.mgr.Close()
		return m, nil
	case isKey(msg, "ctrl+s"):
		return m.submit()
	case isKey(msg, "up", "shift+tab"):
		form.ValidateField(field.Key)
		m.focus = (m.focus - 1 + len(fields)) % len(fields)
		return m, nil
	case isKey(msg, "down", "tab"):
		form.ValidateField(field.Key)
		m.focus = (m.focus + 1) % len(fields)
		return m, nil
	case isEnter(msg):
		form.ValidateField(field.Key)
		if m.focus == len(fields)-1 {
			return m.submit()
		}
		m.focus++
		return m, nil
	}

	switch field.Kind {
	case crud.KindSelect, crud.KindRadio:
		switch {
		case isKey(msg, "right"), isSpace(msg):
			form.UpdateField(field.Key, cycleOption(field, crud.Stringify(form.Value(field.Key)), 1))
		case isKey(msg, "left"):
			form.UpdateField(field.Key, cycleOption(field, crud.Stringify(form.Value(field.Key)), -1))
		}
	case crud.KindCheckbox:
		if isSpace(msg) || isKey(msg, "left", "right") {
			form.UpdateField(field.Key, !checked(form.Value(field.Key)))
		}
	default:
		current := crud.Stringify(form.Value(field.Key))
		switch {
		case isBackspace(msg):
			if r := []rune(current); len(r) > 0 {
				form.UpdateField(field.Key, string(r[:len(r)-1]))
			}
		case isKey(msg, "ctrl+j") && field.Kind == crud.KindTextarea:
			form.UpdateField(field.Key, current+"\n")
		default:
			if text := typed(msg); text != "" {
				form.UpdateField(field.Key, current+text)
			}
		}
	}
	return m, nil
}

// cycleOption steps through a field's option values. Optional fields get a
// blank choice first.
func cycleOption(field crud.Field, current string, step int) string {
	values := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		values = append(values, "")
	}
	for _, opt := range field.Options {
		values = append(values, opt.Value)
	}
	if len(values) == 0 {
		return current
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	return values[(idx+step+len(values))%len(values)]
}

func checked(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

// --- Submit ---

func (m ResourceModel[T]) submit() (tab, tea.Cmd) {
	var (
		op     = "create"
		id     string
		fields crud.Patch
		ok     bool
	)
	if m.mgr.Modals.IsCreateOpen() {
		fields, ok = m.mgr.BeginCreate()
	} else {
		op = "update"
		id, fields, ok = m.mgr.BeginEdit()
	}
	if !ok {
		m.focusFirstError()
		return m, nil
	}

	store, up := m.mgr.Store, m.uploader
	hotelID, table, timeout := m.hotelID, m.res.Table, m.timeout
	formFields := m.mgr.Form.Fields()
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := uploadFiles(ctx, up, hotelID, table, formFields, fields); err != nil {
			return submitDoneMsg{table: table, op: op, err: err}
		}
		var err error
		if op == "create" {
			_, err = store.Create(ctx, fields)
		} else {
			_, err = store.Update(ctx, id, fields)
		}
		return submitDoneMsg{table: table, op: op, err: err}
	}
}

func (m *ResourceModel[T]) focusFirstError() {
	for i, f := range m.mgr.Form.Fields() {
		if m.mgr.Form.Error(f.Key) != "" {
			m.focus = i
			return
		}
	}
}

// --- Form View ---

func (m ResourceModel[T]) renderForm() string {
	form := m.mgr.Form
	width := viewWidth(m.width)
	title := "New " + m.res.Singular
	if m.mgr.Modals.IsEditOpen() {
		title = "Edit " + m.res.Singular
	}

	var b strings.Builder
	for i, f := range form.Fields() {
		focused := i == m.focus
		label := f.Label
		if f.Required {
			label += " *"
		}
		if focused {
			b.WriteString(SelectedStyle.Render("> " + label))
		} else {
			b.WriteString(MutedStyle.Render("  " + label))
		}
		b.WriteString("\n    ")
		b.WriteString(formValue(f, form.Value(f.Key), focused))
		b.WriteString("\n")
		if msg := form.Error(f.Key); msg != "" {
			b.WriteString("    " + ErrorStyle.Render(components.SanitizeOneLine(msg)) + "\n")
		}
	}
	if form.Submitting() {
		b.WriteString("\n" + MutedStyle.Render("Saving..."))
	}
	return components.TitledActiveBox(title, strings.TrimRight(b.String(), "\n"), width)
}

func formValue(f crud.Field, v any, focused bool) string {
	switch f.Kind {
	case crud.KindCheckbox:
		if checked(v) {
			return SuccessStyle.Render("[x]")
		}
		return MutedStyle.Render("[ ]")
	case crud.KindSelect, crud.KindRadio:
		current := crud.Stringify(v)
		if f.Kind == crud.KindRadio {
			parts := make([]string, 0, len(f.Options))
			for _, opt := range f.Options {
				mark := "( )"
				if opt.Value == current {
					mark = "(•)"
				}
				parts = append(parts, mark+" "+opt.Label)
			}
			return NormalStyle.Render(strings.Join(parts, "  "))
		}
		label := "-"
		for _, opt := range f.Options {
			if opt.Value == current {
				label = opt.Label
			}
		}
		if focused {
			return NormalStyle.Render("‹ " + label + " ›")
		}
		return NormalStyle.Render(label)
	}
	text := components.SanitizeText(crud.Stringify(v))
	if f.Kind != crud.KindTextarea {
		text = components.SanitizeOneLine(text)
	}
	if focused {
		text += "█"
	}
	if text == "" {
		return MutedStyle.Render("-")
	}
	return NormalStyle.Render(strings.ReplaceAll(text, "\n", "\n    "))
}

package crud

import "context"

// Config wires the pieces of a Manager together.
type Config[T Entity] struct {
	Fields        []Field
	FormValidator FormValidator
	// EditKeys are the fields copied into an edit draft. Defaults to the
	// keys of Fields.
	EditKeys []string
	Store    StoreConfig[T]
	View     ViewConfig[T]
}

// Manager composes a Store, Form, Modals and View for one entity type. The
// modal coordinator writes edit drafts straight into the Form.
type Manager[T Entity] struct {
	Store  *Store[T]
	Form   *Form
	Modals *Modals[T]
	View   *View[T]
}

// NewManager builds a Manager from cfg.
func NewManager[T Entity](cfg Config[T]) *Manager[T] {
	keys := cfg.EditKeys
	if len(keys) == 0 {
		keys = make([]string, len(cfg.Fields))
		for i, f := range cfg.Fields {
			keys[i] = f.Key
		}
	}
	form := NewForm(cfg.Fields, cfg.FormValidator)
	return &Manager[T]{
		Store:  NewStore(cfg.Store),
		Form:   form,
		Modals: NewModals[T](keys, form.SetValues),
		View:   NewView(cfg.View),
	}
}

// Projection is the view applied to the current collection.
func (m *Manager[T]) Projection() []T {
	return m.View.Apply(m.Store.Items())
}

// --- Modal transitions ---

func (m *Manager[T]) OpenCreate() {
	m.Form.ResetForm()
	m.Modals.OpenCreate()
}

func (m *Manager[T]) OpenEdit(entity T)   { m.Modals.OpenEdit(entity) }
func (m *Manager[T]) OpenDelete(entity T) { m.Modals.OpenDelete(entity) }
func (m *Manager[T]) OpenDetail(entity T) { m.Modals.OpenDetail(entity) }

// Close closes every modal and discards the draft.
func (m *Manager[T]) Close() {
	m.Modals.CloseAll()
	m.Form.ResetForm()
}

// --- Two-phase submits for event loops ---

// BeginCreate validates the form for a create and returns the fields to
// persist. ok is false when no create modal is open or the form is invalid.
func (m *Manager[T]) BeginCreate() (fields Patch, ok bool) {
	if !m.Modals.IsCreateOpen() || !m.Form.BeginSubmit() {
		return nil, false
	}
	return m.Form.Patch(), true
}

// BeginEdit validates the form for an edit and returns the target id and
// the fields to persist. ok is false without an edit subject.
func (m *Manager[T]) BeginEdit() (id string, fields Patch, ok bool) {
	target, open := m.Modals.EditTarget()
	if !open || !m.Form.BeginSubmit() {
		return "", nil, false
	}
	return target.EntityID(), m.Form.Patch(), true
}

// FinishSubmit closes a submit started by BeginCreate or BeginEdit. On
// success the modal closes; on failure the draft stays for another try.
func (m *Manager[T]) FinishSubmit(err error) {
	m.Form.EndSubmit(err)
	if err == nil {
		m.Modals.CloseAll()
	}
}

// --- Blocking submits ---

// SubmitCreate validates and persists the create draft. submitted is false
// when nothing was sent.
func (m *Manager[T]) SubmitCreate(ctx context.Context) (submitted bool, err error) {
	fields, ok := m.BeginCreate()
	if !ok {
		return false, nil
	}
	_, err = m.Store.Create(ctx, fields)
	m.FinishSubmit(err)
	return true, err
}

// SubmitEdit validates and persists the edit draft. Without an edit subject
// it does nothing.
func (m *Manager[T]) SubmitEdit(ctx context.Context) (submitted bool, err error) {
	id, fields, ok := m.BeginEdit()
	if !ok {
		return false, nil
	}
	_, err = m.Store.Update(ctx, id, fields)
	m.FinishSubmit(err)
	return true, err
}

// ConfirmDelete deletes the entity awaiting confirmation. Without one it
// does nothing.
func (m *Manager[T]) ConfirmDelete(ctx context.Context) (deleted bool, err error) {
	target, ok := m.Modals.DeleteTarget()
	if !ok {
		return false, nil
	}
	if err := m.Store.Delete(ctx, target.EntityID()); err != nil {
		return false, err
	}
	m.Modals.CloseAll()
	return true, nil
}

// Toggle flips a boolean field optimistically.
func (m *Manager[T]) Toggle(ctx context.Context, id, field string, value bool) error {
	return m.Store.ToggleField(ctx, id, field, value)
}

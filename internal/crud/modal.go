package crud

// ModalKind names which modal, if any, is open.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalCreating
	ModalEditing
	ModalConfirmingDelete
	ModalViewing
)

func (k ModalKind) String() string {
	switch k {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	case ModalConfirmingDelete:
		return "confirming-delete"
	case ModalViewing:
		return "viewing"
	default:
		return "closed"
	}
}

// ModalState is the single open modal and its subject. Subject is a copy
// taken when the modal opened and is only meaningful for editing,
// confirming-delete and viewing.
type ModalState[T Entity] struct {
	Kind    ModalKind
	Subject T
}

// Modals coordinates which record is being created, edited, deleted or
// viewed. Only one modal can be open at a time.
type Modals[T Entity] struct {
	keys     []string
	setDraft func(Draft)

	state ModalState[T]
	draft Draft
}

// NewModals builds a coordinator that extracts keys into edit drafts. When
// setDraft is non-nil the draft is forwarded to it instead of being kept
// locally, so a Form and the coordinator share one source of truth.
func NewModals[T Entity](keys []string, setDraft func(Draft)) *Modals[T] {
	m := &Modals[T]{keys: keys, setDraft: setDraft}
	m.draft = m.emptyDraft()
	return m
}

// ExtractDraft copies exactly keys out of entity. Keys missing on the
// entity, or null there, become "".
func ExtractDraft(entity any, keys []string) Draft {
	fields, err := Fields(entity)
	if err != nil {
		fields = nil
	}
	d := make(Draft, len(keys))
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			v = ""
		}
		d[k] = v
	}
	return d
}

// State returns the current modal state.
func (m *Modals[T]) State() ModalState[T] { return m.state }

// Draft returns a copy of the local draft.
func (m *Modals[T]) Draft() Draft {
	out := make(Draft, len(m.draft))
	for k, v := range m.draft {
		out[k] = v
	}
	return out
}

// UpdateDraft sets one value in the local draft.
func (m *Modals[T]) UpdateDraft(key string, value any) {
	m.draft[key] = value
}

// OpenCreate resets the local draft and opens the create modal.
func (m *Modals[T]) OpenCreate() {
	m.draft = m.emptyDraft()
	m.state = ModalState[T]{Kind: ModalCreating}
}

// OpenEdit loads the editable fields of entity into a draft and opens the
// edit modal on it.
func (m *Modals[T]) OpenEdit(entity T) {
	d := ExtractDraft(entity, m.keys)
	if m.setDraft != nil {
		m.setDraft(d)
	} else {
		m.draft = d
	}
	m.state = ModalState[T]{Kind: ModalEditing, Subject: entity}
}

// OpenDelete opens the delete confirmation for entity.
func (m *Modals[T]) OpenDelete(entity T) {
	m.state = ModalState[T]{Kind: ModalConfirmingDelete, Subject: entity}
}

// OpenDetail opens the detail view for entity.
func (m *Modals[T]) OpenDetail(entity T) {
	m.state = ModalState[T]{Kind: ModalViewing, Subject: entity}
}

// CloseAll closes whatever is open, forgets every subject and resets the
// local draft.
func (m *Modals[T]) CloseAll() {
	m.state = ModalState[T]{}
	m.draft = m.emptyDraft()
}

func (m *Modals[T]) IsOpen() bool { return m.state.Kind != ModalClosed }
func (m *Modals[T]) IsCreateOpen() bool { return m.state.Kind == ModalCreating }
func (m *Modals[T]) IsEditOpen() bool { return m.state.Kind == ModalEditing }
func (m *Modals[T]) IsDeleteOpen() bool { return m.state.Kind == ModalConfirmingDelete }
func (m *Modals[T]) IsDetailOpen() bool { return m.state.Kind == ModalViewing }
func (m *Modals[T]) Kind() ModalKind { return m.state.Kind }

// EditTarget returns the entity being edited.
func (m *Modals[T]) EditTarget() (T, bool) { return m.subject(ModalEditing) }

// DeleteTarget returns the entity awaiting delete confirmation.
func (m *Modals[T]) DeleteTarget() (T, bool) { return m.subject(ModalConfirmingDelete) }

// ViewTarget returns the entity shown in the detail view.
func (m *Modals[T]) ViewTarget() (T, bool) { return m.subject(ModalViewing) }

func (m *Modals[T]) subject(kind ModalKind) (T, bool) {
	if m.state.Kind != kind {
		var zero T
		return zero, false
	}
	return m.state.Subject, true
}

func (m *Modals[T]) emptyDraft() Draft {
	d := make(Draft, len(m.keys))
	for _, k := range m.keys {
		d[k] = ""
	}
	return d
}

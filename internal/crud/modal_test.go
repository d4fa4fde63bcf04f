package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDraftKeySetIsExact(t *testing.T) {
	g := testGuest{ID: "1", Name: "Alice", Email: "a@x.io", VIP: true}
	keys := []string{"name", "vip", "phone"}

	d := ExtractDraft(g, keys)
	assert.Equal(t, Draft{"name": "Alice", "vip": true, "phone": ""}, d)

	rec := Record{"id": 1, "name": nil}
	assert.Equal(t, Draft{"name": ""}, ExtractDraft(rec, []string{"name"}))
}

func TestOnlyOneModalOpen(t *testing.T) {
	m := NewModals[testGuest]([]string{"name"}, nil)
	alice := testGuest{ID: "1", Name: "Alice"}

	m.OpenEdit(alice)
	assert.True(t, m.IsEditOpen())
	m.OpenDelete(alice)
	assert.False(t, m.IsEditOpen())
	assert.True(t, m.IsDeleteOpen())
	_, ok := m.EditTarget()
	assert.False(t, ok)

	m.OpenDetail(alice)
	assert.Equal(t, ModalViewing, m.Kind())
	target, ok := m.ViewTarget()
	require.True(t, ok)
	assert.Equal(t, alice, target)

	m.OpenCreate()
	assert.True(t, m.IsCreateOpen())
	assert.Equal(t, "creating", m.Kind().String())
}

func TestCloseAllClearsEverything(t *testing.T) {
	alice := testGuest{ID: "1", Name: "Alice"}
	opens := map[string]func(*Modals[testGuest]){
		"create": func(m *Modals[testGuest]) { m.OpenCreate() },
		"edit":   func(m *Modals[testGuest]) { m.OpenEdit(alice) },
		"delete": func(m *Modals[testGuest]) { m.OpenDelete(alice) },
		"detail": func(m *Modals[testGuest]) { m.OpenDetail(alice) },
		"none":   func(*Modals[testGuest]) {},
	}
	for name, open := range opens {
		t.Run(name, func(t *testing.T) {
			m := NewModals[testGuest]([]string{"name"}, nil)
			open(m)
			m.UpdateDraft("name", "draft")
			m.CloseAll()

			assert.False(t, m.IsOpen())
			assert.False(t, m.IsCreateOpen())
			assert.False(t, m.IsEditOpen())
			assert.False(t, m.IsDeleteOpen())
			assert.False(t, m.IsDetailOpen())
			for _, target := range []func() (testGuest, bool){m.EditTarget, m.DeleteTarget, m.ViewTarget} {
				g, ok := target()
				assert.False(t, ok)
				assert.Zero(t, g)
			}
			assert.Equal(t, Draft{"name": ""}, m.Draft())
		})
	}
}

func TestOpenEditForwardsDraft(t *testing.T) {
	var forwarded Draft
	m := NewModals[testGuest]([]string{"name", "email"}, func(d Draft) { forwarded = d })

	m.OpenEdit(testGuest{ID: "1", Name: "Alice"})
	assert.Equal(t, Draft{"name": "Alice", "email": ""}, forwarded)
	assert.Equal(t, Draft{"name": "", "email": ""}, m.Draft())
}

func TestOpenEditStoresDraftLocally(t *testing.T) {
	m := NewModals[testGuest]([]string{"name"}, nil)
	m.OpenEdit(testGuest{ID: "1", Name: "Alice"})
	assert.Equal(t, Draft{"name": "Alice"}, m.Draft())

	m.OpenCreate()
	assert.Equal(t, Draft{"name": ""}, m.Draft())
}

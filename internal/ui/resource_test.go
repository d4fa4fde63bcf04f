package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
)

func TestResourceListRendersSortedRows(t *testing.T) {
	m := seeded(t, hotel.Guests, Env{HotelID: "h1"}, testGuests()...)

	items := m.Manager().Projection()
	require.Len(t, items, 2)
	assert.Equal(t, "Brown", items[0].LastName)

	out := m.View()
	assert.Contains(t, out, "Guests")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Brown")
	assert.Contains(t, out, "2 of 2")
	assert.Contains(t, out, "Last ↑")
}

func TestResourceEmptyStateHints(t *testing.T) {
	m := NewResourceModel(hotel.Guests, Env{})
	assert.Contains(t, m.View(), "No guests yet")

	seededModel := seeded(t, hotel.Guests, Env{}, testGuests()...)
	var tb tab = seededModel
	tb, _ = press(tb, runes("/"))
	tb = typeText(tb, "zzz")
	tb, _ = press(tb, keyOf(tea.KeyEnter))
	assert.Contains(t, tb.View(), "No guests match")
}

func TestResourceCreateLocal(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{HotelID: "h1"}, testGuests()...)

	tb, _ = press(tb, runes("n"))
	assert.True(t, tb.Capturing())
	assert.Contains(t, tb.View(), "New guest")

	tb = typeText(tb, "Ada")
	tb, _ = press(tb, keyOf(tea.KeyTab))
	tb = typeText(tb, "Lovelace")
	assert.True(t, tb.Dirty())

	tb, cmd := press(tb, keyOf(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, submitDoneMsg{}, msg)
	tb, _ = tb.Update(msg)

	m := asModel[hotel.Guest](t, tb)
	assert.False(t, m.Capturing())
	assert.Empty(t, m.errText)
	require.Equal(t, 3, m.Manager().Store.Len())

	var created hotel.Guest
	for _, g := range m.Manager().Store.Items() {
		if g.LastName == "Lovelace" {
			created = g
		}
	}
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada", created.FirstName)
	assert.Equal(t, "h1", created.HotelID)
}

func TestResourceCreateShowsRequiredErrors(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Guests, Env{})

	tb, _ = press(tb, runes("n"), keyOf(tea.KeyTab), keyOf(tea.KeyTab))
	tb, cmd := press(tb, keyOf(tea.KeyCtrlS))
	assert.Nil(t, cmd)

	m := asModel[hotel.Guest](t, tb)
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "First name is required", m.Manager().Form.Error("first_name"))
	assert.Contains(t, tb.View(), "Last name is required")
	assert.Equal(t, 0, m.Manager().Store.Len())
}

func TestResourceFieldValidatedOnLeave(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Guests, Env{})

	tb, _ = press(tb, runes("n"), keyOf(tea.KeyTab), keyOf(tea.KeyTab))
	tb = typeText(tb, "nope")
	tb, _ = press(tb, keyOf(tea.KeyTab))

	m := asModel[hotel.Guest](t, tb)
	assert.Equal(t, "Enter a valid email address", m.Manager().Form.Error("email"))
	assert.Empty(t, m.Manager().Form.Error("phone"))
}

func TestResourceEditLocal(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, _ = press(tb, runes("e"))
	m := asModel[hotel.Guest](t, tb)
	require.True(t, m.Manager().Modals.IsEditOpen())
	assert.Equal(t, "Bob", m.Manager().Form.Value("first_name"))
	assert.False(t, tb.Dirty())
	assert.Contains(t, tb.View(), "Edit guest")

	tb, _ = press(tb, keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace))
	tb = typeText(tb, "Robert")
	assert.True(t, tb.Dirty())

	tb, cmd := press(tb, keyOf(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	tb, _ = tb.Update(cmd())

	m = asModel[hotel.Guest](t, tb)
	got, ok := m.Manager().Store.Get("g2")
	require.True(t, ok)
	assert.Equal(t, "Robert", got.FirstName)
	assert.Equal(t, "Brown", got.LastName)
	assert.False(t, m.Capturing())
}

func TestResourceEditWithoutSelection(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Guests, Env{})

	tb, _ = press(tb, runes("e"))
	m := asModel[hotel.Guest](t, tb)
	assert.False(t, m.Manager().Modals.IsOpen())
	assert.Equal(t, "no entity selected", m.errText)
	assert.Contains(t, tb.View(), "no entity selected")

	tb, _ = press(tb, runes("d"))
	assert.False(t, asModel[hotel.Guest](t, tb).Manager().Modals.IsOpen())
}

func TestResourceEscDiscardsDraft(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Guests, Env{})

	tb, _ = press(tb, runes("n"))
	tb = typeText(tb, "A")
	require.True(t, tb.Dirty())

	tb, _ = press(tb, keyOf(tea.KeyEsc))
	assert.False(t, tb.Dirty())
	assert.False(t, tb.Capturing())
	assert.Equal(t, "", asModel[hotel.Guest](t, tb).Manager().Form.Value("first_name"))
}

func TestResourceDetailAndDelete(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, _ = press(tb, keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	out := tb.View()
	assert.Contains(t, out, "Alice Smith")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "yes")

	tb, _ = press(tb, runes("d"))
	out = tb.View()
	assert.Contains(t, out, "Delete guest")
	assert.Contains(t, out, "y: confirm | n: cancel")

	tb, cmd := press(tb, runes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, deleteDoneMsg{}, msg)
	assert.Equal(t, "Alice Smith", msg.(deleteDoneMsg).label)
	tb, _ = tb.Update(msg)

	m := asModel[hotel.Guest](t, tb)
	assert.False(t, m.Manager().Modals.IsOpen())
	_, ok := m.Manager().Store.Get("g1")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Manager().Store.Len())
}

func TestResourceDeleteCancelKeepsRecord(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, cmd := press(tb, runes("d"), runes("n"))
	assert.Nil(t, cmd)
	m := asModel[hotel.Guest](t, tb)
	assert.False(t, m.Manager().Modals.IsOpen())
	assert.Equal(t, 2, m.Manager().Store.Len())
}

func TestResourceSearchFilterSortKeys(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)
	projection := func() []hotel.Guest { return asModel[hotel.Guest](t, tb).Manager().Projection() }

	tb, _ = press(tb, runes("/"))
	assert.True(t, tb.Capturing())
	tb = typeText(tb, "ali")
	require.Len(t, projection(), 1)
	tb, _ = press(tb, keyOf(tea.KeyEnter))
	assert.False(t, tb.Capturing())
	assert.Contains(t, tb.View(), "search: ali")

	tb, _ = press(tb, runes("c"))
	require.Len(t, projection(), 2)

	tb, _ = press(tb, runes("f"))
	require.Len(t, projection(), 1)
	assert.Equal(t, "Alice", projection()[0].FirstName)
	assert.Contains(t, tb.View(), "is_active: Active")
	tb, _ = press(tb, runes("f"))
	require.Len(t, projection(), 1)
	assert.Equal(t, "Bob", projection()[0].FirstName)
	tb, _ = press(tb, runes("f"))
	require.Len(t, projection(), 2)

	tb, _ = press(tb, runes("s"))
	m := asModel[hotel.Guest](t, tb)
	assert.Equal(t, "room_number", m.Manager().View.SortKey())
	assert.Equal(t, "101", projection()[0].RoomNumber)
	tb, _ = press(tb, runes("S"))
	assert.Equal(t, "204", projection()[0].RoomNumber)

	tb, _ = press(tb, runes("v"))
	assert.Equal(t, crud.ModeGrid, asModel[hotel.Guest](t, tb).Manager().View.Mode())
	assert.Contains(t, tb.View(), "Bob Brown")
}

func TestResourceSearchEscClearsTerm(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, _ = press(tb, runes("/"))
	tb = typeText(tb, "bob")
	tb, _ = press(tb, keyOf(tea.KeyEsc))

	m := asModel[hotel.Guest](t, tb)
	assert.False(t, m.searching)
	assert.Equal(t, "", m.Manager().View.SearchTerm())
	assert.Len(t, m.Manager().Projection(), 2)
}

func TestResourceSelectAndCheckboxInputs(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Amenities, Env{})
	value := func(key string) any { return asModel[hotel.Amenity](t, tb).Manager().Form.Value(key) }

	tb, _ = press(tb, runes("n"), keyOf(tea.KeyDown))
	tb, _ = press(tb, keyOf(tea.KeyRight))
	assert.Equal(t, "spa", value("category"))
	tb, _ = press(tb, keyOf(tea.KeyLeft), keyOf(tea.KeyLeft))
	assert.Equal(t, "activity", value("category"))

	tb, _ = press(tb, keyOf(tea.KeyDown))
	tb = typeText(tb, "a")
	tb, _ = press(tb, keyOf(tea.KeyCtrlJ))
	tb = typeText(tb, "b")
	assert.Equal(t, "a\nb", value("description"))

	tb, _ = press(tb, keyOf(tea.KeyDown), keyOf(tea.KeyDown), keyOf(tea.KeyDown))
	tb, _ = press(tb, keyOf(tea.KeySpace))
	assert.Equal(t, true, value("is_available"))
	tb, _ = press(tb, keyOf(tea.KeySpace))
	assert.Equal(t, false, value("is_available"))
}

func TestResourceNumberFieldIsCoercedOnSave(t *testing.T) {
	var tb tab = NewResourceModel(hotel.Amenities, Env{})

	tb, _ = press(tb, runes("n"))
	tb = typeText(tb, "Spa day")
	tb, _ = press(tb, keyOf(tea.KeyDown), keyOf(tea.KeyDown), keyOf(tea.KeyDown))
	tb = typeText(tb, "12.5")
	tb, cmd := press(tb, keyOf(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	tb, _ = tb.Update(cmd())

	items := asModel[hotel.Amenity](t, tb).Manager().Store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Spa day", items[0].Name)
	assert.Equal(t, 12.5, items[0].Price)
}

func TestResourceToggleLocal(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, cmd := press(tb, keyOf(tea.KeySpace))
	require.NotNil(t, cmd)
	m := asModel[hotel.Guest](t, tb)
	bob, _ := m.Manager().Store.Get("g2")
	assert.True(t, bob.IsActive)
	assert.Equal(t, 1, m.Manager().Store.Pending())
	assert.Contains(t, tb.View(), "saving 1")

	tb, _ = tb.Update(cmd())
	m = asModel[hotel.Guest](t, tb)
	assert.Equal(t, 0, m.Manager().Store.Pending())
	bob, _ = m.Manager().Store.Get("g2")
	assert.True(t, bob.IsActive)
}

func TestResourceRefreshDeferredWhileToggling(t *testing.T) {
	var tb tab = seeded(t, hotel.Guests, Env{}, testGuests()...)

	tb, cmd := press(tb, keyOf(tea.KeySpace))
	require.NotNil(t, cmd)

	tb, _ = tb.Update(loadedMsg[hotel.Guest]{table: hotel.TableGuests, items: []hotel.Guest{{ID: "g9", FirstName: "Zed"}}})
	m := asModel[hotel.Guest](t, tb)
	assert.True(t, m.stale)
	assert.Equal(t, 2, m.Manager().Store.Len())

	tb, _ = tb.Update(cmd())
	m = asModel[hotel.Guest](t, tb)
	assert.False(t, m.stale)
	bob, ok := m.Manager().Store.Get("g2")
	require.True(t, ok)
	assert.True(t, bob.IsActive)
}

func TestResourceToggleRollsBackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"data":[{"id":"g1","first_name":"Alice","last_name":"Smith","is_active":false}]}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"code":"INTERNAL","message":"database unavailable"}}`)
	}))
	t.Cleanup(ts.Close)

	m := NewResourceModel(hotel.Guests, Env{Client: api.NewClient(ts.URL, "k"), HotelID: "h1"})
	cmd := m.Init()
	require.NotNil(t, cmd)
	var tb tab = m
	tb, _ = tb.Update(cmd())
	require.Equal(t, 1, asModel[hotel.Guest](t, tb).Manager().Store.Len())

	tb, cmd = press(tb, keyOf(tea.KeySpace))
	require.NotNil(t, cmd)
	alice, _ := asModel[hotel.Guest](t, tb).Manager().Store.Get("g1")
	assert.True(t, alice.IsActive)

	msg := cmd()
	require.IsType(t, toggleDoneMsg{}, msg)
	require.Error(t, msg.(toggleDoneMsg).err)
	tb, _ = tb.Update(msg)

	rm := asModel[hotel.Guest](t, tb)
	alice, _ = rm.Manager().Store.Get("g1")
	assert.False(t, alice.IsActive)
	assert.Equal(t, 0, rm.Manager().Store.Pending())
	assert.Contains(t, rm.errText, "database unavailable")
}

func TestResourceLoadFailureShowsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid api key"}}`)
	}))
	t.Cleanup(ts.Close)

	m := NewResourceModel(hotel.StaffMembers, Env{Client: api.NewClient(ts.URL, "bad")})
	var tb tab = m
	tb = settle(t, tb, m.Init())

	rm := asModel[hotel.Staff](t, tb)
	assert.False(t, rm.loading)
	assert.Contains(t, rm.errText, "invalid api key")
}

func TestResourceCreateAgainstBackend(t *testing.T) {
	_, client := testBackend(t)
	m := NewResourceModel(hotel.Guests, Env{Client: client, HotelID: "h1"})
	var tb tab = m
	tb = settle(t, tb, m.Init())

	tb, _ = press(tb, runes("n"))
	tb = typeText(tb, "Ada")
	tb, _ = press(tb, keyOf(tea.KeyTab))
	tb = typeText(tb, "Lovelace")
	tb, cmd := press(tb, keyOf(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	tb = settle(t, tb, cmd)

	rm := asModel[hotel.Guest](t, tb)
	require.Empty(t, rm.errText)
	items := rm.Manager().Store.Items()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "h1", items[0].HotelID)
	assert.NotEmpty(t, items[0].CreatedAt)

	remote, err := api.NewTable[hotel.Guest](client, hotel.TableGuests, "h1").List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, items[0].ID, remote[0].ID)
}

func TestResourceChangeTriggersReload(t *testing.T) {
	_, client := testBackend(t)
	m := NewResourceModel(hotel.Guests, Env{Client: client, HotelID: "h1"})
	var tb tab = m
	tb = settle(t, tb, m.Init())

	_, err := api.NewTable[hotel.Guest](client, hotel.TableGuests, "h1").
		Create(context.Background(), crud.Patch{"first_name": "Grace", "last_name": "Hopper", "hotel_id": "h1"})
	require.NoError(t, err)

	tb, cmd := tb.Update(changeMsg{change: api.Change{Table: hotel.TableGuests, Op: api.OpCreate}})
	require.NotNil(t, cmd)
	assert.True(t, asModel[hotel.Guest](t, tb).loading)
	tb = settle(t, tb, cmd)
	assert.Equal(t, 1, asModel[hotel.Guest](t, tb).Manager().Store.Len())
}

type fakeUploader struct{ keys []string }

func (f *fakeUploader) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestUploadFilesReplacesLocalPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	up := &fakeUploader{}
	fields := crud.Patch{"name": "Pool", "image_url": path}
	require.NoError(t, uploadFiles(context.Background(), up, "h1", hotel.TableAmenities, hotel.Amenities.Fields, fields))

	require.Len(t, up.keys, 1)
	assert.Contains(t, fields["image_url"], "https://cdn.example.com/h1/amenities/")
	assert.Equal(t, "Pool", fields["name"])

	fields = crud.Patch{"image_url": "https://elsewhere.example.com/a.png"}
	require.NoError(t, uploadFiles(context.Background(), up, "h1", hotel.TableAmenities, hotel.Amenities.Fields, fields))
	assert.Equal(t, "https://elsewhere.example.com/a.png", fields["image_url"])
	assert.Len(t, up.keys, 1)
}

func TestNextValueWraps(t *testing.T) {
	values := []string{"", "a", "b"}
	assert.Equal(t, "a", nextValue(values, ""))
	assert.Equal(t, "", nextValue(values, "b"))
	assert.Equal(t, "", nextValue(values, "zzz"))
}

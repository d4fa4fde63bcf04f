package ui

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/server"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

// typeText sends s one rune at a time.
func typeText(m tab, s string) tab {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// press sends keys and returns the model and the last command.
func press(m tab, keys ...tea.KeyMsg) (tab, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

// settle runs cmd and feeds its message back, following up to depth
// chained commands.
func settle(t *testing.T, m tab, cmd tea.Cmd) tab {
	t.Helper()
	for i := 0; cmd != nil && i < 4; i++ {
		m, cmd = m.Update(cmd())
	}
	return m
}

func asModel[T crud.Entity](t *testing.T, m tab) ResourceModel[T] {
	t.Helper()
	rm, ok := m.(ResourceModel[T])
	require.True(t, ok, "unexpected tab type %T", m)
	return rm
}

func seeded[T crud.Entity](t *testing.T, res hotel.Resource[T], env Env, items ...T) ResourceModel[T] {
	t.Helper()
	m := NewResourceModel(res, env)
	_, err := m.Manager().Store.ReplaceAll(items)
	require.NoError(t, err)
	m.syncCursor()
	return m
}

func testGuests() []hotel.Guest {
	return []hotel.Guest{
		{ID: "g1", HotelID: "h1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", RoomNumber: "101", IsActive: true},
		{ID: "g2", HotelID: "h1", FirstName: "Bob", LastName: "Brown", RoomNumber: "204"},
	}
}

// testBackend runs the real API server over a temporary sqlite file.
func testBackend(t *testing.T) (*server.Server, *api.Client) {
	t.Helper()
	store, err := server.OpenStore(context.Background(), server.DriverSQLite, filepath.Join(t.TempDir(), "ui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := server.New(server.Config{APIKey: "elv_test"}, store, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, api.NewClient(ts.URL, "elv_test")
}

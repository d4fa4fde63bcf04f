package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
)

func TestTableListScopesByHotel(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/guests", r.URL.Path)
		assert.Equal(t, "h1", r.URL.Query().Get("hotel_id"))
		assert.Equal(t, "ada", r.URL.Query().Get("search"))
		w.Write(jsonResponse([]map[string]any{
			{"id": "g1", "first_name": "Ada", "last_name": "Lovelace", "is_active": true},
			{"id": "g2", "first_name": "Adam", "last_name": "Smith", "is_active": false},
		}))
	})

	guests, err := NewTable[hotel.Guest](client, hotel.TableGuests, "h1").List(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, "Ada Lovelace", guests[0].FullName())
	assert.True(t, guests[0].IsActive)
}

func TestTableListEmpty(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"data":null}`))
	})
	rows, err := NewTable[crud.Record](client, "places", "").List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestTableCreateUpdateDelete(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&body)
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/amenities":
			assert.Equal(t, "Sauna", body["name"])
			body["id"] = "a1"
			w.Write(jsonResponse(body))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/amenities/a1":
			assert.Equal(t, map[string]any{"is_available": false}, body)
			w.Write(jsonResponse(map[string]any{"id": "a1", "name": "Sauna", "is_available": false}))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/amenities/a1":
			w.Write(jsonResponse(map[string]any{"id": "a1"}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	table := NewTable[hotel.Amenity](client, hotel.TableAmenities, "h1")
	ctx := context.Background()

	created, err := table.Create(ctx, crud.Patch{"name": "Sauna", "price": 20.0, "is_available": true})
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, 20.0, created.Price)

	updated, err := table.Update(ctx, "a1", crud.Patch{"is_available": false})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	require.NoError(t, table.Delete(ctx, "a1"))
	err = table.Delete(ctx, "zzz")
	assert.ErrorIs(t, err, crud.ErrNotFound)
}

func TestTableRejectsResponseWithoutID(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(jsonResponse(map[string]any{"name": "ghost"}))
	})
	_, err := NewTable[hotel.Place](client, hotel.TablePlaces, "").Get(context.Background(), "p1")
	assert.ErrorIs(t, err, crud.ErrInvalidID)
}

func TestTableEscapesIDs(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/staff/a%2Fb", r.URL.EscapedPath())
		w.Write(jsonResponse(map[string]any{"id": "a/b"}))
	})
	s, err := NewTable[hotel.Staff](client, hotel.TableStaff, "").Get(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", s.ID)
}

func TestTableDrivesStoreRollback(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"CONFLICT","message":"stale row"}}`))
	})
	table := NewTable[hotel.Guest](client, hotel.TableGuests, "h1")
	store := crud.NewStore(crud.StoreConfig[hotel.Guest]{
		Adapter: crud.AdapterConfig[hotel.Guest]{Ops: crud.Remote[hotel.Guest](table)},
	})
	_, err := store.ReplaceAll([]hotel.Guest{{ID: "g1", IsActive: false}})
	require.NoError(t, err)

	err = store.ToggleField(context.Background(), "g1", "is_active", true)
	require.Error(t, err)
	g, _ := store.Get("g1")
	assert.False(t, g.IsActive)
	assert.Equal(t, "update guests g1: CONFLICT: stale row", store.Adapter().Err())
}

func TestTableConcurrentCreates(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write(jsonResponse(map[string]any{"id": "o", "guest_name": "Ada"}))
	})
	table := NewTable[hotel.RestaurantOrder](client, hotel.TableRestaurantOrders, "h1")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := table.Create(context.Background(), crud.Patch{"guest_name": "Ada"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(workers), count.Load())
}

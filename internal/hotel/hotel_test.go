package hotel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

func TestTables(t *testing.T) {
	assert.Len(t, Tables, 6)
	assert.True(t, IsTable("restaurant_orders"))
	assert.False(t, IsTable("users"))

	index := SearchIndex()
	assert.Len(t, index, len(Tables))
	for _, table := range Tables {
		assert.NotEmpty(t, index[table], table)
	}
	assert.Contains(t, index[TableGuests], "room_number")
}

func TestFieldValidators(t *testing.T) {
	assert.Empty(t, validEmail("front@desk.io", nil))
	assert.Empty(t, validEmail("", nil))
	assert.NotEmpty(t, validEmail("front@desk", nil))

	assert.Empty(t, validPhone("+1 (555) 010-2030", nil))
	assert.NotEmpty(t, validPhone("555-CALL", nil))
	assert.NotEmpty(t, validPhone("12", nil))

	assert.Empty(t, validURL("https://museo.example", nil))
	assert.NotEmpty(t, validURL("museo.example", nil))

	assert.Empty(t, validDate("2026-04-01", nil))
	assert.NotEmpty(t, validDate("01/04/2026", nil))

	price := nonNegative("Price")
	assert.Empty(t, price("12.50", nil))
	assert.Empty(t, price(3.0, nil))
	assert.Empty(t, price("", nil))
	assert.Equal(t, "Price cannot be negative", price("-1", nil))
	assert.Equal(t, "Price must be a number", price("ten", nil))

	rating := between("Rating", 0, 5)
	assert.Equal(t, "Rating must be between 0 and 5", rating("5.5", nil))

	status := oneOf("Status", OrderStatuses)
	assert.Empty(t, status("preparing", nil))
	assert.Equal(t, "Pick a valid status", status("lost", nil))
}

func TestGuestFormRejectsBackwardsStay(t *testing.T) {
	m := Guests.NewManager(crud.Scope{TenantID: "h1"}, crud.AdapterConfig[Guest]{})
	m.OpenCreate()
	m.Form.UpdateField("first_name", "Ada")
	m.Form.UpdateField("last_name", "Lovelace")
	m.Form.UpdateField("check_in", "2026-04-10")
	m.Form.UpdateField("check_out", "2026-04-09")

	submitted, err := m.SubmitCreate(context.Background())
	require.NoError(t, err)
	assert.False(t, submitted)
	assert.Equal(t, "Check-out must be after check-in", m.Form.Error("check_out"))

	m.Form.UpdateField("check_out", "2026-04-12")
	submitted, err = m.SubmitCreate(context.Background())
	require.NoError(t, err)
	assert.True(t, submitted)

	guests := m.Store.Items()
	require.Len(t, guests, 1)
	assert.Equal(t, "Ada Lovelace", guests[0].FullName())
	assert.Equal(t, "h1", guests[0].HotelID)
	assert.False(t, guests[0].IsActive)
}

func TestAmenityFormTypesNumbers(t *testing.T) {
	m := Amenities.NewManager(crud.Scope{}, crud.AdapterConfig[Amenity]{})
	m.OpenCreate()
	m.Form.UpdateField("name", "Sauna")
	m.Form.UpdateField("price", "25")
	m.Form.UpdateField("is_available", "true")

	submitted, err := m.SubmitCreate(context.Background())
	require.NoError(t, err)
	require.True(t, submitted)

	a := m.Store.Items()[0]
	assert.Equal(t, 25.0, a.Price)
	assert.True(t, a.IsAvailable)
}

func TestEditDraftUsesFormKeys(t *testing.T) {
	m := RestaurantOrders.NewManager(crud.Scope{}, crud.AdapterConfig[RestaurantOrder]{})
	order := RestaurantOrder{ID: "o1", GuestName: "Ada", RoomNumber: "12", Items: "tea", Total: 4.5, Status: OrderPending}
	_, err := m.Store.ReplaceAll([]RestaurantOrder{order})
	require.NoError(t, err)

	m.OpenEdit(order)
	assert.Equal(t, crud.Draft{
		"guest_name":           "Ada",
		"room_number":          "12",
		"items":                "tea",
		"total":                4.5,
		"status":               "pending",
		"special_instructions": "",
	}, m.Form.Values())
}

func TestResourceViews(t *testing.T) {
	m := Places.NewManager(crud.Scope{}, crud.AdapterConfig[Place]{})
	_, err := m.Store.ReplaceAll([]Place{
		{ID: "1", Name: "Museo", Category: "museum", Rating: 4.2},
		{ID: "2", Name: "Bar Luce", Category: "bar", Rating: 4.8},
		{ID: "3", Name: "New spot", Category: "bar"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1", "3"}, ids(m.Projection()))
	m.View.SetFilterValue("bar")
	assert.Equal(t, []string{"2", "3"}, ids(m.Projection()))
}

func TestBuildPortal(t *testing.T) {
	amenities := []Amenity{
		{ID: "a1", Name: "Spa", Category: "spa", IsAvailable: true},
		{ID: "a2", Name: "Gym", Category: "fitness", IsAvailable: false},
		{ID: "a3", Name: "Shuttle", Category: "transport", IsAvailable: true},
	}
	places := []Place{
		{ID: "p1", Name: "Museo", Recommended: true, IsActive: true, Rating: 4},
		{ID: "p2", Name: "Closed bar", Recommended: true, IsActive: false},
		{ID: "p3", Name: "Trattoria", Recommended: false, IsActive: true},
		{ID: "p4", Name: "Spa garden", Recommended: true, IsActive: true, Rating: 5},
	}
	contacts := []EmergencyContact{
		{ID: "c1", Name: "Hospital", Type: "medical", IsActive: true},
		{ID: "c2", Name: "Old line", Type: "hotel", IsActive: false},
	}

	p := BuildPortal(amenities, places, contacts, "")
	assert.Equal(t, []string{"a1", "a3"}, ids(p.Amenities))
	assert.Equal(t, []string{"p4", "p1"}, ids(p.Places))
	assert.Equal(t, []string{"c1"}, ids(p.Contacts))
	assert.False(t, p.Empty())

	p = BuildPortal(amenities, places, contacts, "spa")
	assert.Equal(t, []string{"a1"}, ids(p.Amenities))
	assert.Equal(t, []string{"p4"}, ids(p.Places))
	assert.Empty(t, p.Contacts)

	assert.True(t, BuildPortal(nil, nil, nil, "").Empty())
}

func ids[T crud.Entity](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.EntityID()
	}
	return out
}

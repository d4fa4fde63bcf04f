package hotel

import (
	"slices"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// Table names shared by the REST API, the server and the dashboard.
const (
	TableGuests            = "guests"
	TableStaff             = "staff"
	TableAmenities         = "amenities"
	TableRestaurantOrders  = "restaurant_orders"
	TableEmergencyContacts = "emergency_contacts"
	TablePlaces            = "places"
)

// Tables lists every table in dashboard tab order.
var Tables = []string{
	TableGuests,
	TableStaff,
	TableAmenities,
	TableRestaurantOrders,
	TableEmergencyContacts,
	TablePlaces,
}

// IsTable reports whether name is a known table.
func IsTable(name string) bool {
	return slices.Contains(Tables, name)
}

// SearchIndex maps every table to the fields its free-text search reads.
func SearchIndex() map[string][]string {
	return map[string][]string{
		TableGuests:            Guests.SearchFields,
		TableStaff:             StaffMembers.SearchFields,
		TableAmenities:         Amenities.SearchFields,
		TableRestaurantOrders:  RestaurantOrders.SearchFields,
		TableEmergencyContacts: EmergencyContacts.SearchFields,
		TablePlaces:            Places.SearchFields,
	}
}

// Column is one list column.
type Column struct {
	Key   string
	Title string
	Width int
}

// Resource is the full CRUD configuration of one table.
type Resource[T crud.Entity] struct {
	Table    string
	Title    string
	Singular string

	Fields   []crud.Field
	Validate crud.FormValidator

	SearchFields     []string
	FilterField      string
	FilterOptions    []crud.Option
	SortKeys         []string
	DefaultSort      string
	DefaultDirection crud.SortDirection

	// Toggles are the boolean fields flipped optimistically from the list.
	Toggles []string
	Columns []Column
	Label   func(T) string
}

// Config builds the crud.Manager configuration for this resource.
func (r Resource[T]) Config(scope crud.Scope, adapter crud.AdapterConfig[T]) crud.Config[T] {
	return crud.Config[T]{
		Fields:        r.Fields,
		FormValidator: r.Validate,
		Store:         crud.StoreConfig[T]{Scope: scope, Adapter: adapter},
		View: crud.ViewConfig[T]{
			SearchFields:     r.SearchFields,
			FilterField:      r.FilterField,
			InitialSortKey:   r.DefaultSort,
			InitialDirection: r.DefaultDirection,
			InitialMode:      crud.ModeList,
		},
	}
}

// NewManager builds a ready crud.Manager for this resource.
func (r Resource[T]) NewManager(scope crud.Scope, adapter crud.AdapterConfig[T]) *crud.Manager[T] {
	return crud.NewManager(r.Config(scope, adapter))
}

// --- Option sets ---

var (
	OrderStatuses = []crud.Option{
		{Value: OrderPending, Label: "Pending"},
		{Value: OrderPreparing, Label: "Preparing"},
		{Value: OrderDelivered, Label: "Delivered"},
		{Value: OrderCancelled, Label: "Cancelled"},
	}
	Departments = []crud.Option{
		{Value: "front_desk", Label: "Front desk"},
		{Value: "housekeeping", Label: "Housekeeping"},
		{Value: "kitchen", Label: "Kitchen"},
		{Value: "maintenance", Label: "Maintenance"},
		{Value: "management", Label: "Management"},
	}
	AmenityCategories = []crud.Option{
		{Value: "spa", Label: "Spa"},
		{Value: "fitness", Label: "Fitness"},
		{Value: "dining", Label: "Dining"},
		{Value: "transport", Label: "Transport"},
		{Value: "activity", Label: "Activity"},
	}
	ContactTypes = []crud.Option{
		{Value: "medical", Label: "Medical"},
		{Value: "police", Label: "Police"},
		{Value: "fire", Label: "Fire"},
		{Value: "hotel", Label: "Hotel"},
		{Value: "embassy", Label: "Embassy"},
	}
	PlaceCategories = []crud.Option{
		{Value: "restaurant", Label: "Restaurant"},
		{Value: "bar", Label: "Bar"},
		{Value: "museum", Label: "Museum"},
		{Value: "shopping", Label: "Shopping"},
		{Value: "nature", Label: "Nature"},
	}
	activeOptions = []crud.Option{
		{Value: "true", Label: "Active"},
		{Value: "false", Label: "Inactive"},
	}
)

// --- Resources ---

var Guests = Resource[Guest]{
	Table:    TableGuests,
	Title:    "Guests",
	Singular: "guest",
	Fields: []crud.Field{
		{Key: "first_name", Label: "First name", Kind: crud.KindText, Required: true},
		{Key: "last_name", Label: "Last name", Kind: crud.KindText, Required: true},
		{Key: "email", Label: "Email", Kind: crud.KindText, Validate: validEmail},
		{Key: "phone", Label: "Phone", Kind: crud.KindText, Validate: validPhone},
		{Key: "room_number", Label: "Room", Kind: crud.KindText},
		{Key: "check_in", Label: "Check-in", Kind: crud.KindDate, Validate: validDate},
		{Key: "check_out", Label: "Check-out", Kind: crud.KindDate, Validate: validDate},
		{Key: "is_active", Label: "Active", Kind: crud.KindCheckbox},
	},
	Validate:      stayDates,
	SearchFields:  []string{"first_name", "last_name", "email", "room_number"},
	FilterField:   "is_active",
	FilterOptions: activeOptions,
	SortKeys:      []string{"last_name", "room_number", "check_in", "created_at"},
	DefaultSort:   "last_name",
	Toggles:       []string{"is_active"},
	Columns: []Column{
		{Key: "first_name", Title: "First", Width: 12},
		{Key: "last_name", Title: "Last", Width: 14},
		{Key: "room_number", Title: "Room", Width: 6},
		{Key: "check_in", Title: "In", Width: 10},
		{Key: "check_out", Title: "Out", Width: 10},
		{Key: "is_active", Title: "Active", Width: 6},
	},
	Label: Guest.FullName,
}

var StaffMembers = Resource[Staff]{
	Table:    TableStaff,
	Title:    "Staff",
	Singular: "staff member",
	Fields: []crud.Field{
		{Key: "first_name", Label: "First name", Kind: crud.KindText, Required: true},
		{Key: "last_name", Label: "Last name", Kind: crud.KindText, Required: true},
		{Key: "email", Label: "Email", Kind: crud.KindText, Required: true, Validate: validEmail},
		{Key: "position", Label: "Position", Kind: crud.KindText},
		{Key: "department", Label: "Department", Kind: crud.KindSelect, Options: Departments, Validate: oneOf("Department", Departments)},
		{Key: "is_active", Label: "Active", Kind: crud.KindCheckbox},
	},
	SearchFields:  []string{"first_name", "last_name", "email", "position"},
	FilterField:   "department",
	FilterOptions: Departments,
	SortKeys:      []string{"last_name", "department", "created_at"},
	DefaultSort:   "last_name",
	Toggles:       []string{"is_active"},
	Columns: []Column{
		{Key: "first_name", Title: "First", Width: 12},
		{Key: "last_name", Title: "Last", Width: 14},
		{Key: "position", Title: "Position", Width: 16},
		{Key: "department", Title: "Dept", Width: 12},
		{Key: "is_active", Title: "Active", Width: 6},
	},
	Label: Staff.FullName,
}

var Amenities = Resource[Amenity]{
	Table:    TableAmenities,
	Title:    "Amenities",
	Singular: "amenity",
	Fields: []crud.Field{
		{Key: "name", Label: "Name", Kind: crud.KindText, Required: true},
		{Key: "category", Label: "Category", Kind: crud.KindSelect, Options: AmenityCategories, Validate: oneOf("Category", AmenityCategories)},
		{Key: "description", Label: "Description", Kind: crud.KindTextarea},
		{Key: "price", Label: "Price", Kind: crud.KindNumber, Validate: nonNegative("Price")},
		{Key: "image_url", Label: "Image", Kind: crud.KindFile},
		{Key: "is_available", Label: "Available", Kind: crud.KindCheckbox},
		{Key: "recommended", Label: "Recommended", Kind: crud.KindCheckbox},
	},
	SearchFields:  []string{"name", "category", "description"},
	FilterField:   "category",
	FilterOptions: AmenityCategories,
	SortKeys:      []string{"name", "price", "category"},
	DefaultSort:   "name",
	Toggles:       []string{"is_available", "recommended"},
	Columns: []Column{
		{Key: "name", Title: "Name", Width: 20},
		{Key: "category", Title: "Category", Width: 10},
		{Key: "price", Title: "Price", Width: 8},
		{Key: "is_available", Title: "Avail", Width: 6},
		{Key: "recommended", Title: "Rec", Width: 5},
	},
	Label: func(a Amenity) string { return a.Name },
}

var RestaurantOrders = Resource[RestaurantOrder]{
	Table:    TableRestaurantOrders,
	Title:    "Orders",
	Singular: "order",
	Fields: []crud.Field{
		{Key: "guest_name", Label: "Guest", Kind: crud.KindText, Required: true},
		{Key: "room_number", Label: "Room", Kind: crud.KindText, Required: true},
		{Key: "items", Label: "Items", Kind: crud.KindTextarea, Required: true},
		{Key: "total", Label: "Total", Kind: crud.KindNumber, Required: true, Validate: nonNegative("Total")},
		{Key: "status", Label: "Status", Kind: crud.KindRadio, Required: true, Options: OrderStatuses, Validate: oneOf("Status", OrderStatuses)},
		{Key: "special_instructions", Label: "Instructions", Kind: crud.KindTextarea},
	},
	SearchFields:     []string{"guest_name", "room_number", "items"},
	FilterField:      "status",
	FilterOptions:    OrderStatuses,
	SortKeys:         []string{"created_at", "total", "room_number"},
	DefaultSort:      "created_at",
	DefaultDirection: crud.Descending,
	Columns: []Column{
		{Key: "guest_name", Title: "Guest", Width: 16},
		{Key: "room_number", Title: "Room", Width: 6},
		{Key: "total", Title: "Total", Width: 8},
		{Key: "status", Title: "Status", Width: 10},
		{Key: "created_at", Title: "Placed", Width: 20},
	},
	Label: func(o RestaurantOrder) string { return o.GuestName + " (" + o.RoomNumber + ")" },
}

var EmergencyContacts = Resource[EmergencyContact]{
	Table:    TableEmergencyContacts,
	Title:    "Emergency",
	Singular: "emergency contact",
	Fields: []crud.Field{
		{Key: "name", Label: "Name", Kind: crud.KindText, Required: true},
		{Key: "phone", Label: "Phone", Kind: crud.KindText, Required: true, Validate: validPhone},
		{Key: "type", Label: "Type", Kind: crud.KindSelect, Options: ContactTypes, Validate: oneOf("Type", ContactTypes)},
		{Key: "description", Label: "Description", Kind: crud.KindTextarea},
		{Key: "is_active", Label: "Active", Kind: crud.KindCheckbox},
	},
	SearchFields:  []string{"name", "phone", "description"},
	FilterField:   "type",
	FilterOptions: ContactTypes,
	SortKeys:      []string{"name", "type"},
	DefaultSort:   "name",
	Toggles:       []string{"is_active"},
	Columns: []Column{
		{Key: "name", Title: "Name", Width: 20},
		{Key: "phone", Title: "Phone", Width: 16},
		{Key: "type", Title: "Type", Width: 10},
		{Key: "is_active", Title: "Active", Width: 6},
	},
	Label: func(c EmergencyContact) string { return c.Name },
}

var Places = Resource[Place]{
	Table:    TablePlaces,
	Title:    "Places",
	Singular: "place",
	Fields: []crud.Field{
		{Key: "name", Label: "Name", Kind: crud.KindText, Required: true},
		{Key: "category", Label: "Category", Kind: crud.KindSelect, Options: PlaceCategories, Validate: oneOf("Category", PlaceCategories)},
		{Key: "address", Label: "Address", Kind: crud.KindText},
		{Key: "phone", Label: "Phone", Kind: crud.KindText, Validate: validPhone},
		{Key: "website", Label: "Website", Kind: crud.KindText, Validate: validURL},
		{Key: "rating", Label: "Rating", Kind: crud.KindNumber, Validate: between("Rating", 0, 5)},
		{Key: "recommended", Label: "Recommended", Kind: crud.KindCheckbox},
		{Key: "is_active", Label: "Active", Kind: crud.KindCheckbox},
	},
	SearchFields:     []string{"name", "category", "address"},
	FilterField:      "category",
	FilterOptions:    PlaceCategories,
	SortKeys:         []string{"name", "rating", "category"},
	DefaultSort:      "rating",
	DefaultDirection: crud.Descending,
	Toggles:          []string{"recommended", "is_active"},
	Columns: []Column{
		{Key: "name", Title: "Name", Width: 20},
		{Key: "category", Title: "Category", Width: 10},
		{Key: "rating", Title: "Rating", Width: 6},
		{Key: "recommended", Title: "Rec", Width: 5},
		{Key: "is_active", Title: "Active", Width: 6},
	},
	Label: func(p Place) string { return p.Name },
}

// Package hotel defines the dashboard's entities and the per-table
// configuration that drives the generic CRUD layer for each of them.
package hotel

// --- Guests ---

// Guest is a person staying at the hotel.
type Guest struct {
	ID         string `json:"id"`
	HotelID    string `json:"hotel_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	RoomNumber string `json:"room_number,omitempty"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func (g Guest) EntityID() string { return g.ID }

// FullName joins first and last name.
func (g Guest) FullName() string { return joinName(g.FirstName, g.LastName) }

// --- Staff ---

// Staff is a hotel employee.
type Staff struct {
	ID         string `json:"id"`
	HotelID    string `json:"hotel_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func (s Staff) EntityID() string { return s.ID }

func (s Staff) FullName() string { return joinName(s.FirstName, s.LastName) }

// --- Amenities ---

// Amenity is a bookable service or facility offered to guests.
type Amenity struct {
	ID          string  `json:"id"`
	HotelID     string  `json:"hotel_id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
	Recommended bool    `json:"recommended"`
	ImageURL    string  `json:"image_url,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

func (a Amenity) EntityID() string { return a.ID }

// --- Restaurant orders ---

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// RestaurantOrder is a room-service or restaurant order.
type RestaurantOrder struct {
	ID                  string  `json:"id"`
	HotelID             string  `json:"hotel_id,omitempty"`
	GuestName           string  `json:"guest_name"`
	RoomNumber          string  `json:"room_number,omitempty"`
	Items               string  `json:"items,omitempty"`
	Total               float64 `json:"total"`
	Status              string  `json:"status,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
	CreatedAt           string  `json:"created_at,omitempty"`
}

func (o RestaurantOrder) EntityID() string { return o.ID }

// --- Emergency contacts ---

// EmergencyContact is a number guests can call in an emergency.
type EmergencyContact struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotel_id,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (c EmergencyContact) EntityID() string { return c.ID }

// --- Places ---

// Place is a third-party venue near the hotel.
type Place struct {
	ID          string  `json:"id"`
	HotelID     string  `json:"hotel_id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Website     string  `json:"website,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Recommended bool    `json:"recommended"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

func (p Place) EntityID() string { return p.ID }

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

package api

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QueryParams holds optional query string filters.
type QueryParams map[string]string

// --- Change feed ---

// Change operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Change is one event on the realtime feed, sent after every mutation.
type Change struct {
	Type    string `json:"type"`
	Table   string `json:"table"`
	Op      string `json:"op"`
	ID      string `json:"id"`
	HotelID string `json:"hotel_id,omitempty"`
}

// Deleted is the payload of a delete response.
type Deleted struct {
	ID string `json:"id"`
}

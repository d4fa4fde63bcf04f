package crud

import (
	"context"
	"errors"
	"time"
)

type testGuest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Status    string `json:"status,omitempty"`
	Age       int    `json:"age,omitempty"`
	VIP       bool   `json:"vip"`
	HotelID   string `json:"hotel_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (g testGuest) EntityID() string { return g.ID }

var errRejected = errors.New("rejected by server")

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func rejectingUpdate[T Entity]() OperationFuncs[T] {
	return OperationFuncs[T]{
		Update: func(context.Context, string, Patch) (T, error) {
			var zero T
			return zero, errRejected
		},
	}
}

func seededStore(t interface{ Helper() }, ops OperationFuncs[testGuest], guests ...testGuest) *Store[testGuest] {
	t.Helper()
	s := NewStore(StoreConfig[testGuest]{
		Adapter: AdapterConfig[testGuest]{Ops: ops, Now: fixedClock, NewID: sequentialIDs("g")},
	})
	if _, err := s.ReplaceAll(guests); err != nil {
		panic(err)
	}
	return s
}

func aliceAndBob() []Record {
	return []Record{
		{"id": 1, "name": "Alice", "is_active": true},
		{"id": 2, "name": "Bob", "is_active": false},
	}
}

func ids[T Entity](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.EntityID()
	}
	return out
}

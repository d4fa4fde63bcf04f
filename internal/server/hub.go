package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
)

// subscriberBuffer is how many changes a slow client may lag behind before
// it is dropped.
const subscriberBuffer = 64

// Hub fans change events out to websocket subscribers.
type Hub struct {
	logger  *slog.Logger
	metrics *Metrics

	mu   sync.Mutex
	subs map[chan api.Change]string
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger, metrics *Metrics) *Hub {
	return &Hub{logger: logger, metrics: metrics, subs: map[chan api.Change]string{}}
}

// Publish sends change to every subscriber watching its hotel. Subscribers
// whose buffer is full are disconnected.
func (h *Hub) Publish(change api.Change) {
	change.Type = "change"
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, hotelID := range h.subs {
		if hotelID != "" && change.HotelID != "" && hotelID != change.HotelID {
			continue
		}
		select {
		case ch <- change:
		default:
			h.logger.Warn("dropping slow change subscriber")
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe(hotelID string) chan api.Change {
	ch := make(chan api.Change, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = hotelID
	h.mu.Unlock()
	h.metrics.subscribers.Inc()
	return ch
}

func (h *Hub) unsubscribe(ch chan api.Change) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
	h.metrics.subscribers.Dec()
}

// ServeHTTP upgrades to a websocket and streams changes until either side
// goes away. ?hotel_id= limits the stream to one hotel.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Warn("websocket accept", "err", err)
		return
	}
	defer conn.CloseNow()

	// Clients never send; CloseRead handles pings and notices disconnects.
	ctx := conn.CloseRead(r.Context())
	ch := h.subscribe(r.URL.Query().Get("hotel_id"))
	defer h.unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "subscriber too slow")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, change)
			cancel()
			if err != nil {
				h.logger.Debug("websocket write", "err", err)
				return
			}
		}
	}
}

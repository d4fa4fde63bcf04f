package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Subscribe streams change events from /api/changes into fn until ctx ends
// or the server closes the feed. A clean shutdown returns nil.
func (c *Client) Subscribe(ctx context.Context, fn func(Change)) error {
	header := http.Header{}
	c.authorize(header)

	conn, _, err := websocket.Dial(ctx, websocketURL(c.baseURL)+"/api/changes", &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return fmt.Errorf("dial change feed: %w", err)
	}
	defer conn.CloseNow()

	for {
		var change Change
		if err := wsjson.Read(ctx, conn, &change); err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read change: %w", err)
		}
		if change.Type != "change" {
			continue
		}
		fn(change)
	}
}

func websocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultBaseURL is where the dashboard looks for the backend when the
// config names no base_url.
const DefaultBaseURL = "http://localhost:8080"

// Health calls /healthz and returns the reported status. Anything other
// than "ok" is an error, so callers can treat a nil error as ready.
func (c *Client) Health(ctx context.Context) (string, error) {
	data, err := c.get(ctx, "/healthz")
	if err != nil {
		return "", fmt.Errorf("health: %w", err)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode health: %w", err)
	}
	if payload.Status != "ok" {
		return payload.Status, fmt.Errorf("server not ready: status %q", payload.Status)
	}
	return payload.Status, nil
}

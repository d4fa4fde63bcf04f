package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// Client wraps HTTP calls to the hotel backend REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, apiKey string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Error is a non-2xx response. A 404 unwraps to crud.ErrNotFound.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if msg, ok := formatAPIError(e.Code, e.Message); ok {
		return msg
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return crud.ErrNotFound
	}
	return nil
}

// do executes an HTTP request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	c.authorize(req.Header)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		if code, msg, ok := extractAPIErrorBody(respBody); ok {
			apiErr.Code, apiErr.Message = code, msg
		} else {
			apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return nil, resp.StatusCode, apiErr
	}

	return respBody, resp.StatusCode, nil
}

func (c *Client) authorize(h http.Header) {
	if c.apiKey != "" {
		h.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, path, nil)
	return body, err
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	b, _, err := c.do(ctx, http.MethodPost, path, body)
	return b, err
}

// patch performs a PATCH request.
func (c *Client) patch(ctx context.Context, path string, body any) ([]byte, error) {
	b, _, err := c.do(ctx, http.MethodPatch, path, body)
	return b, err
}

// del performs a DELETE request.
func (c *Client) del(ctx context.Context, path string) ([]byte, error) {
	b, _, err := c.do(ctx, http.MethodDelete, path, nil)
	return b, err
}

// decodeOne decodes a single-item API response.
func decodeOne[T any](data []byte) (T, error) {
	var resp apiResponse[T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp.Data, fmt.Errorf("decode response: %w", err)
	}
	return resp.Data, nil
}

// decodeList decodes a list API response.
func decodeList[T any](data []byte) ([]T, error) {
	var resp apiResponse[[]T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Data == nil {
		return []T{}, nil
	}
	return resp.Data, nil
}

// buildQuery appends query params to a path.
func buildQuery(path string, params QueryParams) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func extractAPIErrorBody(body []byte) (code, message string, ok bool) {
	if len(body) == 0 {
		return "", "", false
	}

	var envelope apiResponse[any]
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return strings.TrimSpace(envelope.Error.Code), strings.TrimSpace(envelope.Error.Message), true
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", false
	}

	if code, msg, ok := parseErrorValue(payload["error"]); ok {
		return code, msg, true
	}
	if code, msg, ok := parseErrorValue(payload["detail"]); ok {
		return code, msg, true
	}
	return "", "", false
}

func parseErrorValue(raw any) (code, message string, ok bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		return "", msg, msg != ""
	case map[string]any:
		if c, m, ok := parseErrorValue(value["error"]); ok {
			return c, m, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		code, message = strings.TrimSpace(code), strings.TrimSpace(message)
		return code, message, code != "" || message != ""
	}
	return "", "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}

// Package remote wraps the authoritative upstream REST API. Successful
// responses arrive under a `data` envelope which is unwrapped before the
// payload is handed to callers; any transport failure or non-2xx status
// surfaces as a typed *Error.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error describes a failed upstream call.
type Error struct {
	Method     string
	Path       string
	StatusCode int // zero when the request never reached the server
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: %s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("remote: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope matches the upstream response shape {"data": ...}.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Method: method, Path: path, Err: err}
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &Error{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("Upstream request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("Upstream returned error status", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	// Unwrap the `data` envelope when present; some endpoints return the
	// payload bare.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// Get fetches an arbitrary path, used for collection reads and the
// read-only dashboard aggregates.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) GetOne(ctx context.Context, resource string, id int, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", resource, id), nil, out)
}

func (c *Client) Create(ctx context.Context, resource string, body, out any) error {
	return c.do(ctx, http.MethodPost, resource, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) PatchOne(ctx context.Context, resource string, id int, body, out any) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", resource, id), body, out)
}

func (c *Client) Delete(ctx context.Context, resource string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", resource, id), nil, nil)
}

// Package backend is the typed HTTP client for the remote bookstore API.
// The backend owns the business logic (inventory, auth issuance, review
// persistence); this client only shapes requests and normalizes responses.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"boighor-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Error carries the upstream HTTP status and message so handlers can relay
// failures without inventing their own wording.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// StatusOf maps an error from this client to an HTTP status for the caller.
// Transport-level failures surface as 502.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// do executes one call. Idempotent GETs are retried once on transport
// failure; everything else is attempted exactly once.
func (c *Client) do(ctx context.Context, method, path, token string, body []byte, contentType string, out any) error {
	attempts := 1
	if method == http.MethodGet {
		attempts = 2
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = c.doOnce(ctx, method, path, token, body, contentType, out)
		if lastErr == nil {
			return nil
		}
		// Only transport errors are worth a retry; upstream rejections are final.
		var apiErr *Error
		if errors.As(lastErr, &apiErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path, token string, body []byte, contentType string, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.BackendCall(method, path, 0, time.Since(start), err)
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	logger.BackendCall(method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readMessage pulls a human-readable error out of an upstream failure body.
// The backend answers with {"message": ...} or {"error": ...} depending on
// the endpoint.
func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "request failed"
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, token, body, "application/json", out)
}

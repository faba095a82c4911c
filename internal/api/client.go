package api

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

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/observability"
)

// Client talks to the remote delivery backend. It is the only component
// allowed to issue requests against the backend; every screen-facing
// operation in the gateway goes through it.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

func NewClient(base string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the envelope. A success=false envelope
// becomes a *RemoteError; anything below that becomes a *TransportError.
// out, when non-nil, receives the envelope's data payload.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out)
	observability.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err == nil:
	case IsRemote(err):
		outcome = "rejected"
	default:
		outcome = "transport"
	}
	observability.BackendRequestsTotal.WithLabelValues(op, outcome).Inc()
	if err != nil {
		c.logger.Warn("backend call failed", "op", op, "method", method, "path", path, "error", err)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: "encode request", Err: err}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &TransportError{Op: method + " " + path, Err: fmt.Errorf("status %d with no usable body", resp.StatusCode)}
		}
		return &TransportError{Op: method + " " + path, Err: err}
	}
	if !env.Success {
		return &RemoteError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Op: method + " " + path, Err: err}
		}
	}
	return nil
}

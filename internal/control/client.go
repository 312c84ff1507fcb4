// Package control is a typed client for the per-session proxy control API.
package control

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oh-my-claude/menubar/internal/models"
)

// ErrRequestFailed is returned for every failed control call: timeouts,
// refused connections, non-2xx responses and malformed bodies alike.
var ErrRequestFailed = errors.New("request failed")

// DefaultTimeout bounds each control call.
const DefaultTimeout = 3 * time.Second

const (
	defaultHost  = "localhost"
	maxBodyBytes = 1 << 20
)

// Client talks to proxy control APIs on loopback ports.
type Client struct {
	host string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHost overrides the loopback host name.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// New creates a control API client.
func New(opts ...Option) *Client {
	c := &Client{
		host: defaultHost,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context, controlPort int) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, controlPort, "/health", "", nil, &resp, "status"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status calls GET /status?session=<id>.
func (c *Client) Status(ctx context.Context, controlPort int, sessionID string) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := c.doJSON(ctx, http.MethodGet, controlPort, "/status", sessionID, nil, &resp, "switched"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Switch calls POST /switch?session=<id> with the target provider and model.
func (c *Client) Switch(ctx context.Context, controlPort int, sessionID, provider, model string) (*models.SwitchResponse, error) {
	var resp models.SwitchResponse
	body := models.SwitchRequest{Provider: provider, Model: model}
	if err := c.doJSON(ctx, http.MethodPost, controlPort, "/switch", sessionID, body, &resp, "switched"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Revert calls POST /revert?session=<id>.
func (c *Client) Revert(ctx context.Context, controlPort int, sessionID string) (*models.SwitchResponse, error) {
	var resp models.SwitchResponse
	if err := c.doJSON(ctx, http.MethodPost, controlPort, "/revert", sessionID, nil, &resp, "switched"); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) endpoint(controlPort int, path, sessionID string) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(c.host, strconv.Itoa(controlPort)),
		Path:   path,
	}
	if sessionID != "" {
		u.RawQuery = url.Values{"session": []string{sessionID}}.Encode()
	}
	return u.String()
}

func (c *Client) doJSON(ctx context.Context, method string, controlPort int, path, sessionID string, body, out any, required ...string) error {
	if controlPort <= 0 || controlPort > 65535 {
		return fmt.Errorf("%w: %s %s: invalid control port %d", ErrRequestFailed, method, path, controlPort)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode %s body: %w", ErrRequestFailed, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(controlPort, path, sessionID), reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %w", ErrRequestFailed, method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", ErrRequestFailed, method, path, resp.StatusCode)
	}
	if err := decodeBody(data, out, required); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return nil
}

// decodeBody unmarshals data into out and checks that every required
// top-level key is present.
func decodeBody(data []byte, out any, required []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("malformed body: missing %q", key)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}

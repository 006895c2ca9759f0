package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound reports that an id did not resolve on whichever backing store
// served the call.
var ErrNotFound = errors.New("record not found")

// Identity is the unsigned caller identity forwarded in X-Telegram-* headers.
type Identity struct {
	TelegramID string
	Username   string
	FirstName  string
	LastName   string
}

// Client is the HTTP client shared by the remote entity stores.
type Client struct {
	baseURL  string
	client   *http.Client
	identity Identity
}

func NewClient(baseURL string, identity Identity) *Client {
	return &Client{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		identity: identity,
	}
}

// WithIdentity returns a copy of the client acting as the given user. The
// underlying transport is shared.
func (c *Client) WithIdentity(identity Identity) *Client {
	clone := *c
	clone.identity = identity
	return &clone
}

// Health probes the liveness endpoint. It carries no identity headers, so it
// never creates a user as a side effect.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed: %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Telegram-Id", c.identity.TelegramID)
	req.Header.Set("X-Telegram-Username", url.QueryEscape(c.identity.Username))
	req.Header.Set("X-Telegram-First-Name", url.QueryEscape(c.identity.FirstName))
	req.Header.Set("X-Telegram-Last-Name", url.QueryEscape(c.identity.LastName))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := string(raw)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, ErrNotFound)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

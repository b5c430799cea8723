// Package api is the single point of egress for every backend call: one
// configured request pipeline with bearer-token injection and global 401
// handling.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/awsomeshop/awsomeshop/internal/config"
	"github.com/awsomeshop/awsomeshop/internal/session"
)

const (
	DefaultBaseURL = "http://localhost:8080/api/v1"
	defaultTimeout = 10 * time.Second
)

type Client struct {
	baseURL        string
	http           *http.Client
	store          *session.Store
	onUnauthorized func()
	log            *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUnauthorizedHook sets the callback run after a 401 cleared the store;
// the host uses it to force navigation to the login page.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: config.EnvDefault("AWSOMESHOP_API_BASE_URL", DefaultBaseURL),
		http: &http.Client{
			Timeout: time.Duration(config.EnvIntDefault("AWSOMESHOP_TIMEOUT_MS", int(defaultTimeout/time.Millisecond))) * time.Millisecond,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do runs a single attempt; retries are the caller's responsibility.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Path: path, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Path: path, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		se := &StatusError{Status: resp.StatusCode, Path: path, Message: errorMessage(data)}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			// Session is gone server-side: clear it locally and send the
			// host back to the login page. The error still propagates.
			c.store.Clear()
			c.log.Warn("session_expired", "path", path)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		case http.StatusForbidden:
			c.log.Warn("access_denied", "path", path)
		}
		return nil, se
	}

	return data, nil
}

// errorMessage pulls {"error": "..."} out of an error body when present.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Error
}

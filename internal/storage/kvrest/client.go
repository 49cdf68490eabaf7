// Package kvrest is the remote key-value tier: a client for Redis-over-REST
// stores that expose GET /get/{key} and POST /set/{key} with bearer token
// authentication.
package kvrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 16 << 20
)

var ErrInvalidURL = errors.New("invalid KV REST URL")

// response is the envelope every endpoint answers with.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds a client that authenticates every request with token.
func New(rawURL, token string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(rawURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = defaultTimeout

	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) Init() error  { return nil }
func (c *Client) Load() error  { return nil }
func (c *Client) Close() error { return nil }

// Get fetches key. A null result means the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("get", key), nil)
	if err != nil {
		return "", false, err
	}

	result, err := c.do(req)
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	if len(result) == 0 || string(result) == "null" {
		return "", false, nil
	}
	if result[0] == '"' {
		var s string
		if err := json.Unmarshal(result, &s); err != nil {
			return "", false, fmt.Errorf("kv get %q: failed to decode result: %w", key, err)
		}
		return s, true, nil
	}
	// Structured values come back verbatim.
	return string(result), true, nil
}

// Set stores value under key. The value is sent as the raw request body.
func (c *Client) Set(ctx context.Context, key, value string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("set", key), strings.NewReader(value))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (c *Client) Name() string { return "kvrest" }

// GetConfigPath returns the store host; the token is never exposed.
func (c *Client) GetConfigPath() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

func (c *Client) endpoint(command, key string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + command + "/" + key
	u.RawPath = c.baseURL.EscapedPath() + "/" + command + "/" + url.PathEscape(key)
	return u.String()
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var r response
	decodeErr := json.Unmarshal(body, &r)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && r.Error != "" {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, r.Error)
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if r.Error != "" {
		return nil, errors.New(r.Error)
	}
	return r.Result, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config configures a Client. All dependencies are explicit so tests can
// inject doubles.
type Config struct {
	// BaseURL is the backend root, e.g. "https://tracker.example.com/api/v1".
	BaseURL string
	// ProjectID is echoed back in the X-Project-ID header on every request.
	ProjectID string
	// HTTPClient is optional; http.DefaultClient when nil.
	HTTPClient *http.Client
	// Logger is optional; defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Client talks to the tracker backend. It caches the session token and the
// last fetched account; a 401 from any call clears both.
type Client struct {
	baseURL   string
	projectID string
	http      *http.Client
	log       zerolog.Logger

	mu      sync.RWMutex
	token   string
	account *Account
}

// New creates a client from the given configuration
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		projectID: cfg.ProjectID,
		http:      httpClient,
		log:       logger,
	}
}

// errorBody is the backend's JSON error envelope
type errorBody struct {
	Error string `json:"error"`
}

// do issues an authenticated request and decodes a 2xx JSON body into out.
// A 401 clears the cached session before the error is returned. Other non-2xx
// statuses come back as an *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindInvalid, Message: "failed to encode request body", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Kind: KindInvalid, Message: "failed to build request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.projectID != "" {
		req.Header.Set("X-Project-ID", c.projectID)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Stale credentials. Drop the cached identity so the next
		// IsAuthenticated check reports logged-out instead of serving
		// the old account.
		c.clearSession()
		return &APIError{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "authentication failed"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return &APIError{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Message: "failed to decode response", Err: err}
	}
	return nil
}

// Token returns the cached session token, empty when logged out
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// setSession caches the token and account after signup/login
func (c *Client) setSession(token string, account *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.account = account
}

// cacheAccount stores the account payload from a successful /account fetch
func (c *Client) cacheAccount(account *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
}

// cachedAccount returns the last stored account, nil when none
func (c *Client) cachedAccount() *Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

// clearSession drops the token and cached account
func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.account = nil
}

// Health reports whether the backend answers its health endpoint
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

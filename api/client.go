// Package api is the HTTP client for the content service that [quote] looks
// up authors and pages from.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
)

// Client is the content service API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]*Content
}

// NewClient creates a new content service client. The token is sent as a
// bearer token when non-empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cache: make(map[string]*Content),
	}
}

// do executes an HTTP request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	// Ensure path starts with /
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Message == "" {
			errResp = ErrorResponse{Message: strings.TrimSpace(string(respBody))}
		}
		errResp.StatusCode = resp.StatusCode
		return nil, &errResp
	}

	return respBody, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path)
}

// Ping checks that the service is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Get(ctx, "/health")
	return err
}

// Verify pings the service and turns auth failures into actionable errors.
func (c *Client) Verify(ctx context.Context) error {
	err := c.Ping(ctx)
	if err == nil {
		return nil
	}

	var errResp *ErrorResponse
	if !errors.As(err, &errResp) {
		return err
	}
	switch errResp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("authentication failed - check your content token")
	case http.StatusForbidden:
		return fmt.Errorf("access denied - check the token's permissions")
	}
	return fmt.Errorf("unexpected status code: %d", errResp.StatusCode)
}

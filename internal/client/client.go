// Package client provides an HTTP client for the gardet REST API.
package client

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

	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
)

// Client is an HTTP client for the gardet API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ListProperties returns the listings matching location and type. An empty
// location matches everything.
func (c *Client) ListProperties(location string, t search.PropertyType) ([]*property.Property, error) {
	params := url.Values{}
	if location != "" {
		params.Set("location", location)
	}
	if t != "" {
		params.Set("type", string(t))
	}

	path := "/api/properties"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var props []*property.Property
	if err := c.get(context.Background(), path, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Search runs a search request built by the search widget.
func (c *Client) Search(req search.Request) ([]*property.Property, error) {
	return c.ListProperties(req.Location(), req.Type())
}

// GetProperty returns one listing.
func (c *Client) GetProperty(id int64) (*property.Property, error) {
	var p property.Property
	if err := c.get(context.Background(), fmt.Sprintf("/api/properties/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AddProperty creates a listing.
func (c *Client) AddProperty(in property.Input) (*property.Property, error) {
	var p property.Property
	if err := c.post(context.Background(), "/api/properties", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a listing.
func (c *Client) DeleteProperty(id int64) error {
	return c.doDelete(context.Background(), fmt.Sprintf("/api/properties/%d", id))
}

// QuickFilters returns the quick filters with their listing counts.
func (c *Client) QuickFilters() ([]property.FilterCount, error) {
	var counts []property.FilterCount
	if err := c.get(context.Background(), "/api/filters", &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Session returns the identity behind the API key, or nil when the client
// is anonymous.
func (c *Client) Session() (*header.Identity, error) {
	var resp struct {
		User *header.Identity `json:"user"`
	}
	if err := c.get(context.Background(), "/api/session", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout revokes the client's API key on the server. Its signature fits
// header.LogoutFunc.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/logout", nil, nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
// A nil body sends no payload.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request with auth header and handles errors.
func (c *Client) do(req *http.Request, result any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		} else {
			apiErr.Message = "server error: " + http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

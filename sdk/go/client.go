package archivo

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
)

// Config holds the configuration for the Archivo client.
type Config struct {
	// BaseURL is the root URL of the Archivo server.
	// Default: "http://localhost:8080"
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 10s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client calls the Archivo catalog API.
type Client struct {
	cfg Config
}

// NewClient creates a new Archivo client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// CreateLibrary registers a dimensional library.
func (c *Client) CreateLibrary(ctx context.Context, req LibraryInput) (*Library, error) {
	var lib Library
	if err := c.do(ctx, http.MethodPost, "/bibliotecas/", req, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// ListLibraries returns every library in creation order.
func (c *Client) ListLibraries(ctx context.Context) ([]Library, error) {
	libs := []Library{}
	if err := c.do(ctx, http.MethodGet, "/bibliotecas/", nil, &libs); err != nil {
		return nil, err
	}
	return libs, nil
}

// GetLibrary fetches one library by id.
func (c *Client) GetLibrary(ctx context.Context, id string) (*Library, error) {
	var lib Library
	if err := c.do(ctx, http.MethodGet, "/bibliotecas/"+url.PathEscape(id), nil, &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// CreateBook registers a lost book. The origin library must already exist.
func (c *Client) CreateBook(ctx context.Context, req BookInput) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/libros/", req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns books in creation order, restricted to one origin
// library when libraryID is not empty.
func (c *Client) ListBooks(ctx context.Context, libraryID string) ([]Book, error) {
	path := "/libros/"
	if libraryID != "" {
		path += "?" + url.Values{"biblioteca_id": {libraryID}}.Encode()
	}

	books := []Book{}
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches one book by id.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, "/libros/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// do sends a request to the Archivo API and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("archivo: failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("archivo: failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("archivo: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("archivo: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("archivo: failed to parse response: %w", err)
	}
	return nil
}

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is a Directory backed by the external directory REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientHTTPClient sets a custom HTTP client.
func WithClientHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) Course(ctx context.Context, id string) (Course, error) {
	var course Course
	if err := c.get(ctx, "/courses/"+url.PathEscape(id), &course); err != nil {
		return Course{}, err
	}
	return course, nil
}

func (c *Client) Faculty(ctx context.Context, id string) (Faculty, error) {
	var faculty Faculty
	if err := c.get(ctx, "/faculty/"+url.PathEscape(id), &faculty); err != nil {
		return Faculty{}, err
	}
	return faculty, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("directory api error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

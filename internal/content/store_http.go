package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPStore is a Store backed by the external content REST API. Calls use a
// background context with the store's timeout; the backing API is fronted by
// this service, not the other way around.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// HTTPStoreOption configures an HTTPStore.
type HTTPStoreOption func(*HTTPStore)

// WithHTTPStoreClient sets a custom HTTP client.
func WithHTTPStoreClient(client *http.Client) HTTPStoreOption {
	return func(s *HTTPStore) {
		s.client = client
	}
}

// NewHTTPStore creates a content store for the given base URL.
func NewHTTPStore(baseURL string, opts ...HTTPStoreOption) *HTTPStore {
	s := &HTTPStore{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPStore) Create(rec Record) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	var created Record
	if err := s.do(http.MethodPost, "/contents", bytes.NewReader(body), &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *HTTPStore) Get(id string) (*Record, error) {
	var rec Record
	if err := s.do(http.MethodGet, "/contents/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *HTTPStore) ListByFaculty(facultyID string) ([]Record, error) {
	var records []Record
	path := "/contents?faculty_id=" + url.QueryEscape(facultyID)
	if err := s.do(http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HTTPStore) Delete(id string) error {
	return s.do(http.MethodDelete, "/contents/"+url.PathEscape(id), nil, nil)
}

func (s *HTTPStore) do(method, path string, body io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("content api error (status %d): %s", resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

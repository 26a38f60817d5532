package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the DestinyJobs REST backend. The zero base URL points
// at a local development backend.
type Client struct {
	baseURL     string
	token       string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

const defaultBaseURL = "http://localhost:8000"

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// BaseURL is also the origin relative /media paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) sendRequest(method string, url string, body io.Reader, contentType string) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(context.Background())
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) sendJSON(method string, url string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request body: %v", err)
	}
	return c.sendRequest(method, url, bytes.NewReader(encoded), "application/json")
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extractAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// extractAPIError builds a readable error from whatever the backend sent:
// an "error" string, a "details" object keyed by field, or the raw body.
func extractAPIError(statusCode int, body []byte) error {

	var payload struct {
		Error   string                     `json:"error"`
		Details map[string]json.RawMessage `json:"details"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return fmt.Errorf("request failed with status %v: %v", statusCode, payload.Error)
		}
		if len(payload.Details) > 0 {
			return fmt.Errorf("request failed with status %v: %v", statusCode, flattenDetails(payload.Details))
		}
	}

	if len(bytes.TrimSpace(body)) > 0 {
		return fmt.Errorf("request failed with status %v, body: %v", statusCode, string(body))
	}
	return fmt.Errorf("request failed with status %v", statusCode)
}

func flattenDetails(details map[string]json.RawMessage) string {

	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		var value any
		if err := json.Unmarshal(details[key], &value); err != nil {
			value = string(details[key])
		}
		parts = append(parts, fmt.Sprintf("%v: %v", key, value))
	}
	return strings.Join(parts, "; ")
}

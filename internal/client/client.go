package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is an HTTP client for the BFHL API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Result is the decoded /bfhl response envelope.
type Result struct {
	IsSuccess     bool            `json:"is_success" yaml:"is_success"`
	OfficialEmail string          `json:"official_email" yaml:"official_email"`
	Data          json.RawMessage `json:"data,omitempty" yaml:"-"`
	Error         string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Info is the GET / document.
type Info struct {
	IsSuccess     bool              `json:"is_success" yaml:"is_success"`
	OfficialEmail string            `json:"official_email" yaml:"official_email"`
	Message       string            `json:"message" yaml:"message"`
	Endpoints     map[string]string `json:"endpoints" yaml:"endpoints"`
}

// Health is the GET /health document.
type Health struct {
	IsSuccess     bool   `json:"is_success" yaml:"is_success"`
	OfficialEmail string `json:"official_email" yaml:"official_email"`
}

// APIError is returned when the service answers with a failed envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Fibonacci returns the first n Fibonacci terms.
func (c *Client) Fibonacci(ctx context.Context, n int) ([]int64, error) {
	var out []int64
	err := c.operation(ctx, "fibonacci", n, &out)
	return out, err
}

// Primes returns the primes in nums.
func (c *Client) Primes(ctx context.Context, nums []int64) ([]int64, error) {
	var out []int64
	err := c.operation(ctx, "prime", nums, &out)
	return out, err
}

// LCM returns the least common multiple of nums.
func (c *Client) LCM(ctx context.Context, nums []int64) (int64, error) {
	var out int64
	err := c.operation(ctx, "lcm", nums, &out)
	return out, err
}

// HCF returns the highest common factor of nums.
func (c *Client) HCF(ctx context.Context, nums []int64) (int64, error) {
	var out int64
	err := c.operation(ctx, "hcf", nums, &out)
	return out, err
}

// Ask returns a one-word answer to question.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var out string
	err := c.operation(ctx, "AI", question, &out)
	return out, err
}

// Do posts an arbitrary body to /bfhl and returns the decoded envelope.
// A failed envelope is returned together with an *APIError.
func (c *Client) Do(ctx context.Context, body map[string]any) (*Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/bfhl", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result Result
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	if resp.StatusCode != http.StatusOK || !result.IsSuccess {
		msg := result.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &result, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &result, nil
}

func (c *Client) operation(ctx context.Context, key string, value, out any) error {
	result, err := c.Do(ctx, map[string]any{key: value})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", key, err)
	}
	return nil
}

// Info retrieves the service information document.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.getJSON(ctx, "/", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health calls the health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/health", &h); err != nil {
		return nil, err
	}
	if !h.IsSuccess {
		return &h, errors.New("service reported unhealthy")
	}
	return &h, nil
}

// OperationCode calls GET /bfhl.
func (c *Client) OperationCode(ctx context.Context) (int, error) {
	var out struct {
		OperationCode int `json:"operation_code"`
	}
	if err := c.getJSON(ctx, "/bfhl", &out); err != nil {
		return 0, err
	}
	return out.OperationCode, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

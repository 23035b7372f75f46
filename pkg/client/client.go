package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"embedproxy/internal/gateway"
)

// Go client for the embedding proxy.
//
// Example usage:
//  c := NewClient("http://localhost:5000")
//  resp, err := c.CreateEmbeddings(ctx, []string{"hello", "world"})
//  ...

// Client is a thin HTTP client for the proxy's OpenAI-shaped API.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// APIError is returned when the proxy answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("embedproxy: %d %s", e.StatusCode, e.Message)
}

// NewClient creates a new client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// request sends an HTTP request and returns the response body.
func (c *Client) request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return nil, apiErr
	}
	return respBody, nil
}

// HealthCheck reports whether the proxy is up.
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	resp, err := c.request(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return false, err
	}
	var result struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return false, err
	}
	return result.Status == "ok", nil
}

// CreateEmbeddings posts input, which may be a string, []string, []int or
// [][]int, to /v1/embeddings.
func (c *Client) CreateEmbeddings(ctx context.Context, input any) (*gateway.EmbeddingResponse, error) {
	resp, err := c.request(ctx, http.MethodPost, "/v1/embeddings", map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	var result gateway.EmbeddingResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Package apiclient handles all communication with the accounts and catalog
// APIs on behalf of the frontend.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shoply-dev/shoply/shared/middleware"
)

// apiVersion is sent in the X-Api-Version header on every request.
const apiVersion = "1.0"

type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do performs one API request. A non-empty bearer goes into the
// Authorization header.
func (c *APIClient) do(method, path string, body any, bearer string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.VersionHeader, apiVersion)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// doJSON performs a request and decodes a successful response into out.
// Error responses become an *APIError carrying the backend's message.
func (c *APIClient) doJSON(method, path string, body any, bearer string, out any) error {
	resp, err := c.do(method, path, body, bearer)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}

// APIError is a structured backend rejection, as opposed to a transport
// failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func errorFromResponse(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}

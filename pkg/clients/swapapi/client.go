package swapapi

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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/harbourview/swapctl/internal/config"
)

const defaultTimeout = 30 * time.Second

var validate = validator.New()

// Client is a typed HTTP client for the scheduling backend's swap API.
// It validates request payloads before dispatch and decodes non-2xx
// responses into *APIError values.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a client authenticated via the backend's OAuth2
// client-credentials token endpoint.
func NewClient(ctx context.Context, cfg *config.Config, creds *config.APICredentials, logger *zap.Logger) (*Client, error) {
	ccCfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		Scopes:       creds.Scopes,
	}

	httpClient := ccCfg.Client(ctx)
	httpClient.Timeout = defaultTimeout
	if cfg.RequestTimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	return newClient(httpClient, cfg.APIBaseURL, logger), nil
}

// NewClientWithHTTP creates a client over a caller-supplied *http.Client.
// Used by tests against httptest servers.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return newClient(httpClient, baseURL, logger)
}

func newClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// doJSON issues one request and decodes the JSON response into out (if out
// is non-nil). body is marshalled as JSON when non-nil and validated first
// if it carries validate tags.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if body != nil {
		if err := validate.Struct(body); err != nil {
			return fmt.Errorf("invalid request payload: %w", err)
		}
	}

	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doBlob issues one request and returns the raw body plus its content type,
// for binary report downloads.
func (c *Client) doBlob(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	if body != nil {
		if err := validate.Struct(body); err != nil {
			return nil, "", fmt.Errorf("invalid request payload: %w", err)
		}
	}

	resp, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", decodeAPIError(resp.StatusCode, respBody)
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	c.logger.Debug("Calling swap API",
		zap.String("method", method),
		zap.String("url", reqURL))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call swap API: %w", err)
	}

	c.logger.Debug("Swap API responded",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}

// Package provisioningclient calls the member provisioning function on
// behalf of the onboarding wizard.
package provisioningclient

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

	"github.com/society/backend/internal/domain/onboarding"
)

const maxResponseSize = 1 << 20

// ErrMissingURL is returned when no function URL is configured
var ErrMissingURL = errors.New("provisioningclient: function url is required")

// ServerError is an error answer from the provisioning function
type ServerError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return fmt.Sprintf("provisioning function returned %d: %s", e.Status, e.Message)
}

// Reason returns the message sent by the function
func (e *ServerError) Reason() string {
	return e.Message
}

// Config holds the function endpoint settings
type Config struct {
	URL string
	// APIKey is sent as the apikey header when set
	APIKey string
	// AccessToken is the caller's session token, sent as a bearer token
	AccessToken string
	Timeout     time.Duration
}

// Client implements the wizard's Submitter over HTTP
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a provisioning function client
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Submit posts req to the function and decodes its answer
func (c *Client) Submit(ctx context.Context, req *onboarding.ProvisioningRequest) (*onboarding.ProvisioningResult, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("provisioningclient: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("provisioningclient: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("apikey", c.cfg.APIKey)
	}
	if c.cfg.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provisioningclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("provisioningclient: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &ServerError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			se.Message = payload.Error
		}
		return nil, se
	}

	var result onboarding.ProvisioningResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("provisioningclient: failed to decode response: %w", err)
	}
	if result.Status != "success" {
		return nil, &ServerError{Status: resp.StatusCode, Message: "unexpected response status " + result.Status}
	}
	return &result, nil
}

// Package identityadmin talks to the identity platform's privileged admin
// API, and provides an in-memory stand-in for development and tests.
package identityadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/member"
	"github.com/society/backend/internal/domain/shared"
)

const (
	// maxResponseSize caps how much of a response body is read
	maxResponseSize = 1 << 20
	adminUsersPath  = "/auth/v1/admin/users"
	lookupPageSize  = 50
)

var (
	ErrMissingURL        = errors.New("identityadmin: platform url is required")
	ErrMissingServiceKey = errors.New("identityadmin: service key is required")
)

// PlatformError is a non-2xx answer from the admin API
type PlatformError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identityadmin: HTTP %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("identityadmin: HTTP %d: %s", e.Status, e.Message)
}

// Config holds admin API settings
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// Validate checks that both platform values are present
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrMissingURL
	}
	if strings.TrimSpace(c.ServiceKey) == "" {
		return ErrMissingServiceKey
	}
	return nil
}

// Client implements member.IdentityAdmin over HTTP
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an admin API client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// adminUser is the admin API's user object
type adminUser struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (u *adminUser) toIdentity() *member.Identity {
	return &member.Identity{
		ID:             u.ID,
		Email:          u.Email,
		Phone:          u.Phone,
		EmailConfirmed: u.EmailConfirmedAt != nil,
		Metadata:       u.UserMetadata,
		CreatedAt:      u.CreatedAt,
	}
}

type createUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Phone        string         `json:"phone,omitempty"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type updateUserRequest struct {
	Password     *string        `json:"password,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	EmailConfirm *bool          `json:"email_confirm,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type listUsersResponse struct {
	Users []adminUser `json:"users"`
}

type errorResponse struct {
	Code      any    `json:"code"`
	ErrorCode string `json:"error_code"`
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

// CreateUser creates a sign-in identity
func (c *Client) CreateUser(ctx context.Context, identity member.NewIdentity) (*member.Identity, error) {
	var user adminUser
	err := c.do(ctx, http.MethodPost, adminUsersPath, createUserRequest{
		Email:        identity.Email,
		Password:     identity.Password,
		Phone:        identity.Phone,
		EmailConfirm: identity.EmailConfirm,
		UserMetadata: identity.Metadata,
	}, &user)
	if err != nil {
		return nil, err
	}
	return user.toIdentity(), nil
}

// UpdateUser changes the non-nil fields of update on identity id
func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, update member.IdentityUpdate) (*member.Identity, error) {
	var user adminUser
	err := c.do(ctx, http.MethodPut, adminUsersPath+"/"+id.String(), updateUserRequest{
		Password:     update.Password,
		Phone:        update.Phone,
		EmailConfirm: update.EmailConfirm,
		UserMetadata: update.Metadata,
	}, &user)
	if err != nil {
		return nil, err
	}
	return user.toIdentity(), nil
}

// FindUserByEmail returns the identity whose email matches exactly, ignoring
// case, or shared.ErrNotFound.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*member.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	q := url.Values{}
	q.Set("filter", email)
	q.Set("page", "1")
	q.Set("per_page", fmt.Sprint(lookupPageSize))

	var list listUsersResponse
	if err := c.do(ctx, http.MethodGet, adminUsersPath+"?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	for i := range list.Users {
		if strings.EqualFold(list.Users[i].Email, email) {
			return list.Users[i].toIdentity(), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identityadmin: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identityadmin: failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identityadmin: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("identityadmin: failed to read response: %w", err)
	}

	c.logger.Debug("Identity admin request",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("identityadmin: failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	pe := &PlatformError{Status: status, Message: http.StatusText(status)}
	var er errorResponse
	if json.Unmarshal(raw, &er) == nil {
		for _, m := range []string{er.Msg, er.Message, er.Error} {
			if m != "" {
				pe.Message = m
				break
			}
		}
		pe.Code = er.ErrorCode
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, pe.Error())
	}
	return pe
}

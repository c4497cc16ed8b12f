// Package adapters provides the HTTP identity client and local storage for the session.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"booking_backend/internal/feature/identity/domain/entity"
	"booking_backend/internal/feature/identity/transport/http/dto"
	"booking_backend/internal/feature/session/usecase"
)

// maxResponseBody caps how much of a response is read.
const maxResponseBody = 1 << 20

// IdentityClient calls the identity service over HTTP.
type IdentityClient struct {
	baseURL string
	client  *http.Client
}

var _ usecase.IdentityAPI = (*IdentityClient)(nil)

// NewIdentityClient creates a client for the service at baseURL (e.g. http://localhost:3001).
func NewIdentityClient(baseURL string, client *http.Client) *IdentityClient {
	return &IdentityClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// RegisterEmail calls POST /register/email.
func (c *IdentityClient) RegisterEmail(ctx context.Context, email, password string) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/register/email", dto.EmailCredentialsReq{Email: email, Password: password})
}

// RegisterPhone calls POST /register/phone.
func (c *IdentityClient) RegisterPhone(ctx context.Context, phone string) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/register/phone", dto.PhoneReq{Phone: phone})
}

// RegisterGmail calls POST /register/gmail.
func (c *IdentityClient) RegisterGmail(ctx context.Context) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/register/gmail", struct{}{})
}

// LoginEmail calls POST /auth/email.
func (c *IdentityClient) LoginEmail(ctx context.Context, email, password string) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/auth/email", dto.EmailCredentialsReq{Email: email, Password: password})
}

// LoginPhone calls POST /auth/phone.
func (c *IdentityClient) LoginPhone(ctx context.Context, phone string) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/auth/phone", dto.PhoneReq{Phone: phone})
}

// LoginGmail calls POST /auth/gmail.
func (c *IdentityClient) LoginGmail(ctx context.Context) (*entity.User, error) {
	return c.do(ctx, http.MethodPost, "/auth/gmail", struct{}{})
}

// GetUser calls GET /users/:id.
func (c *IdentityClient) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
}

// UpdateUser calls PUT /users/:id with only the profile fields that are set.
func (c *IdentityClient) UpdateUser(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error) {
	req := dto.UpdateUserReq{
		FirstName: update.FirstName,
		LastName:  update.LastName,
		Username:  update.Username,
		Avatar:    update.Avatar,
	}
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req)
}

// do sends one request and decodes a user from a 200 response.
// Error statuses map to the session sentinels, carrying the server message.
func (c *IdentityClient) do(ctx context.Context, method, path string, body any) (*entity.User, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", usecase.ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var res dto.UserRes
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("%w: decode user: %w", usecase.ErrRequestFailed, err)
	}
	user := res.ToEntity()
	return &user, nil
}

func statusError(status int, body []byte) error {
	var sentinel error
	switch status {
	case http.StatusConflict:
		sentinel = usecase.ErrConflict
	case http.StatusUnauthorized:
		sentinel = usecase.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = usecase.ErrNotFound
	default:
		sentinel = usecase.ErrRequestFailed
	}

	var res dto.ErrorRes
	if json.Unmarshal(body, &res) == nil && res.Error != "" {
		return fmt.Errorf("%w: %s (status %d)", sentinel, res.Error, status)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ukydev/scooter-console/internal/models"
)

// AuthService is the admin and rider account service.
type AuthService struct {
	client *Client
}

// NewAuthService wraps a client rooted at the auth service's /api.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func userPath(id models.ID) string {
	return "/users/" + url.PathEscape(id.String())
}

// CreateAdmin registers another console operator.
func (s *AuthService) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.Admin, error) {
	var admin models.Admin
	if err := s.client.do(ctx, http.MethodPost, "/admin/create", nil, req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := s.client.send(ctx, http.MethodPost, "/admin/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the operator the current token belongs to. The profile may
// arrive bare or under an "admin" key; an empty body means no profile.
func (s *AuthService) Me(ctx context.Context) (*models.Admin, error) {
	var raw json.RawMessage
	if err := s.client.do(ctx, http.MethodGet, "/admin/me", nil, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var wrapped struct {
		Admin *models.Admin `json:"admin"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Admin != nil {
		return wrapped.Admin, nil
	}

	var admin models.Admin
	if err := json.Unmarshal(raw, &admin); err != nil {
		return nil, fmt.Errorf("failed to decode admin profile: %w", err)
	}
	if admin.ID == "" && admin.Email == "" {
		return nil, nil
	}
	return &admin, nil
}

// ListUsers returns every rider.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, s.client, "/users", nil)
}

// GetUser returns one rider.
func (s *AuthService) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	var user models.User
	if err := s.client.do(ctx, http.MethodGet, userPath(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser signs up a rider.
func (s *AuthService) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	var user models.User
	if err := s.client.do(ctx, http.MethodPost, "/auth/signup", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser edits a rider.
func (s *AuthService) UpdateUser(ctx context.Context, id models.ID, in models.UserInput) (*models.User, error) {
	var user models.User
	if err := s.client.do(ctx, http.MethodPut, userPath(id), nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a rider.
func (s *AuthService) DeleteUser(ctx context.Context, id models.ID) error {
	return s.client.do(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}

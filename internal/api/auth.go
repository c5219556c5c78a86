package api

import (
	"context"
	"net/http"

	"github.com/noah-isme/academy-console/internal/models"
)

// AuthClient talks to the authentication endpoints.
type AuthClient struct {
	client *Client
}

// Auth returns the auth client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

// Login exchanges credentials for a bearer token and the operator profile.
func (a *AuthClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := a.client.do(ctx, "auth", http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the currently authenticated user.
func (a *AuthClient) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.client.do(ctx, "auth", http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

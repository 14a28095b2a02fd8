package client

import (
	"context"
	"net/http"
)

type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResult is the response of a successful login or registration.
type AuthResult struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    AuthUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks the current token against the server. An auth-classified
// error means the token is no longer usable.
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/verify", nil, nil)
}

package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return authResult(env, "Login failed")
}

func (c *Client) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Email: email, Password: password, Username: username})
	if err != nil {
		return nil, err
	}
	return authResult(env, "Registration failed")
}

// CurrentUser fetches the authenticated user's latest record.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.User == nil {
		return nil, &Error{Message: env.reason("Failed to load user")}
	}
	return env.User, nil
}

func authResult(env *envelope, fallback string) (*AuthResult, error) {
	if !env.Success || env.User == nil || env.Token == "" {
		return nil, &Error{Message: env.reason(fallback)}
	}
	return &AuthResult{Token: env.Token, User: *env.User}, nil
}

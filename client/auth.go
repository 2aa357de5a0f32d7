package client

import (
	"context"
	"net/http"
)

// SignupRequest is the request body for Signup
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for Login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account and caches the returned session
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &session); err != nil {
		return nil, err
	}
	c.setSession(session.Token, &session.User)
	return &session, nil
}

// Login authenticates and caches the returned session
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &session); err != nil {
		return nil, err
	}
	c.setSession(session.Token, &session.User)
	return &session, nil
}

// Logout drops the cached session. Purely local, the backend keeps no
// session state beyond the token expiry.
func (c *Client) Logout() {
	c.clearSession()
}

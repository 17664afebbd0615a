package gateway

import (
	"context"
	"net/http"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	IsLogged bool   `json:"isLogged"`
	Name     string `json:"name"`
	UserID   int64  `json:"userId"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

type LogoutResponse struct {
	IsLogged bool   `json:"isLogged"`
	Message  string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (r *MessageResponse) setMessage(s string) { r.Message = s }

func (c *Client) Register(ctx context.Context, req RegisterRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, &out)
	return out, err
}

// Login returns a KindRejected failure when the backend answers 2xx but
// reports isLogged=false, so callers only have one failure path.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return LoginResponse{}, err
	}
	if !out.IsLogged {
		return LoginResponse{}, &Failure{Op: "login", Kind: KindRejected, Status: http.StatusOK, Message: out.Message}
	}
	return out, nil
}

func (c *Client) Logout(ctx context.Context) (LogoutResponse, error) {
	var out LogoutResponse
	err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, &out)
	return out, err
}

// Package session owns the logged-in identity. A Session moves
// anonymous -> authenticated(Identity) -> anonymous and is handed to the
// workflow instead of being read from ambient storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
)

// Authenticator is the slice of the gateway a Session needs.
type Authenticator interface {
	Login(ctx context.Context, req gateway.LoginRequest) (gateway.LoginResponse, error)
	Logout(ctx context.Context) (gateway.LogoutResponse, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (gateway.MessageResponse, error)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

const MinPasswordLength = 6

type Session struct {
	auth  Authenticator
	store Store
	log   *slog.Logger

	mu       sync.RWMutex
	identity Identity
}

func New(auth Authenticator, store Store, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{auth: auth, store: store, log: log}
}

// Current returns the identity and whether it is authenticated.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.identity.LoggedIn
}

// Restore loads the identity from the store. A store error leaves the
// session anonymous.
func (s *Session) Restore(ctx context.Context) (Identity, error) {
	m, err := s.store.Load(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("restore session: %w", err)
	}
	id := fromEntries(m)
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	return id, nil
}

// Establish logs in. On any failure the previous identity and stored entries
// stay exactly as they were.
func (s *Session) Establish(ctx context.Context, c Credentials) (Identity, error) {
	fe := orders.FieldErrors{}
	if msg := orders.EmailProblem(c.Email); msg != "" {
		fe["email"] = msg
	}
	if c.Password == "" {
		fe["password"] = "Password is required"
	}
	if err := fe.Err(); err != nil {
		return Identity{}, err
	}

	resp, err := s.auth.Login(ctx, gateway.LoginRequest{Email: c.Email, Password: c.Password})
	if err != nil {
		s.log.Error("login failed", "email", c.Email, "error", err)
		return Identity{}, err
	}
	id := Identity{
		UserID:   resp.UserID,
		Name:     resp.Name,
		Role:     Role(resp.Role),
		LoggedIn: true,
	}
	if r, ok := ParseRole(resp.Role); ok {
		id.Role = r
	}
	if err := s.store.Save(ctx, id.entries()); err != nil {
		return Identity{}, fmt.Errorf("store session: %w", err)
	}
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	s.log.Info("session established", "user_id", id.UserID, "role", id.Role)
	return id, nil
}

// Teardown logs out. The identity is cleared whether or not the logout call
// succeeded; the logout error is still returned.
func (s *Session) Teardown(ctx context.Context) error {
	_, logoutErr := s.auth.Logout(ctx)
	if logoutErr != nil {
		s.log.Error("logout failed, clearing session anyway", "error", logoutErr)
	}

	s.mu.Lock()
	s.identity = Identity{}
	s.mu.Unlock()

	clearErr := s.store.Clear(ctx)
	if clearErr != nil {
		clearErr = fmt.Errorf("clear session: %w", clearErr)
	}
	return errors.Join(logoutErr, clearErr)
}

// Register creates an account. It does not log the new user in.
func (s *Session) Register(ctx context.Context, r Registration) (string, error) {
	fe := orders.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		fe["name"] = "Name is required"
	}
	if msg := orders.EmailProblem(r.Email); msg != "" {
		fe["email"] = msg
	}
	switch {
	case r.Password == "":
		fe["password"] = "Password is required"
	case utf8.RuneCountInString(r.Password) < MinPasswordLength:
		fe["password"] = fmt.Sprintf("Minimum %d characters", MinPasswordLength)
	}
	switch {
	case r.ConfirmPassword == "":
		fe["confirmPassword"] = "Confirm Password is required"
	case r.ConfirmPassword != r.Password:
		fe["confirmPassword"] = "Passwords must match"
	}
	role, ok := ParseRole(r.Role)
	if !ok {
		fe["role"] = "Choose customer or distributor"
	}
	if err := fe.Err(); err != nil {
		return "", err
	}

	resp, err := s.auth.Register(ctx, gateway.RegisterRequest{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Role:            string(role),
	})
	if err != nil {
		s.log.Error("register failed", "email", r.Email, "error", err)
		return "", err
	}
	return resp.Message, nil
}

// Package auth is the thin client for the companion backend's account
// endpoints. The forms that collect these values are rendered elsewhere;
// this package only validates and ships them.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"procure-ai/client/internal/interfaces"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/transport"
)

// LoginRequest carries user credentials for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries a new profile for /api/auth/register. Password
// confirmation is enforced client-side before any network call.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Client talks to the auth routes through the shared transport.
type Client struct {
	transport interfaces.Transport
}

// NewClient creates an auth client.
func NewClient(t interfaces.Transport) *Client {
	return &Client{transport: t}
}

// Login exchanges credentials for a user profile. A non-2xx response comes
// back as a transport.APIError (invalid credentials or validation failure).
func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user model.User
	if err := c.transport.Request(ctx, http.MethodPost, "/api/auth/login", transport.JSON(req), transport.Options{}, &user); err != nil {
		return nil, err
	}
	slog.Info("Logged in", "email", user.Email)
	return &user, nil
}

// Register creates an account and returns the new profile. Backend-side
// failures are additionally reported to the error-logging route, best
// effort, before the original error is returned.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user model.User
	if err := c.transport.Request(ctx, http.MethodPost, "/api/auth/register", transport.JSON(req), transport.Options{}, &user); err != nil {
		c.logRegistrationError(ctx, err)
		return nil, err
	}
	slog.Info("Registered", "email", user.Email)
	return &user, nil
}

// logRegistrationError ships a registration failure to the backend's error
// log. Its own failure is only logged locally.
func (c *Client) logRegistrationError(ctx context.Context, cause error) {
	payload := map[string]string{"error": cause.Error()}
	opts := transport.Options{Retries: transport.RetryCount(0)}
	if err := c.transport.Request(ctx, http.MethodPost, "/api/logRegistrationError", transport.JSON(payload), opts, nil); err != nil {
		slog.Warn("Failed to report registration error", "error", err)
	}
}

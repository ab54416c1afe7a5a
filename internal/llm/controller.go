// Package llm tracks the active model selection and issues chat queries
// against it through the shared transport client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	apperrors "procure-ai/client/internal/errors"
	"procure-ai/client/internal/interfaces"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/notify"
	"procure-ai/client/internal/registry"
	"procure-ai/client/internal/transport"
)

// QueryError maps a low-level transport failure to a single user-facing
// message while preserving the original error for logging.
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string { return e.Message }

func (e *QueryError) Unwrap() error { return e.Err }

// Controller owns the currently selected model id. Switching does not cancel
// in-flight queries: a dispatched query completes against whatever model id
// it captured.
type Controller struct {
	transport   interfaces.Transport
	registry    *registry.Registry
	health      interfaces.HealthSource
	credentials interfaces.CredentialStore
	notifier    notify.Notifier

	mu      sync.Mutex
	current string
}

// NewController creates a Controller with the fixed local default model
// selected.
func NewController(
	t interfaces.Transport,
	reg *registry.Registry,
	health interfaces.HealthSource,
	credentials interfaces.CredentialStore,
	notifier notify.Notifier,
) *Controller {
	return &Controller{
		transport:   t,
		registry:    reg,
		health:      health,
		credentials: credentials,
		notifier:    notifier,
		current:     registry.DefaultModelID,
	}
}

// CurrentModel returns the descriptor of the active model.
func (c *Controller) CurrentModel() registry.Model {
	c.mu.Lock()
	id := c.current
	c.mu.Unlock()

	m, ok := c.registry.Get(id)
	if !ok {
		// The selection is only ever set through SwitchModel, so it
		// always resolves.
		panic(fmt.Sprintf("selected model %q missing from registry", id))
	}
	return m
}

// SwitchModel validates id against the registry and updates the selection.
// An unknown id leaves the previous selection untouched.
func (c *Controller) SwitchModel(id string) error {
	m, ok := c.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: invalid model: %s", apperrors.ErrValidation, id)
	}

	c.mu.Lock()
	from := c.current
	c.current = id
	c.mu.Unlock()

	slog.Info("Switching model", "from", from, "to", id)
	c.notifier.Notify(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf("Switched to %s", m.Name),
	})
	return nil
}

// Query sends question (and any attachments) to the active model.
//
// Fail-fast order: credential check, backend health, runner health (local
// models only). None of those paths reaches the chat endpoint. Transport
// failures come back as *QueryError with a message fit for a notification.
func (c *Controller) Query(ctx context.Context, question string, attachments []model.Attachment) (*model.LLMResponse, error) {
	m := c.CurrentModel()

	var apiKey string
	if c.registry.RequiresCredential(m.ID) {
		key, err := c.credentials.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not read stored API key: %w", err)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: an API key is required to use %s", apperrors.ErrValidation, m.Name)
		}
		apiKey = key
	}

	if !c.health.CheckBackend(ctx) {
		return nil, fmt.Errorf("%w: API server is not available. Please start the server.", apperrors.ErrUnavailable)
	}
	if m.Local && !c.health.CheckRunner(ctx) {
		return nil, fmt.Errorf("%w: local model unavailable. Please ensure Ollama is running.", apperrors.ErrUnavailable)
	}

	slog.Info("Querying model", "model", m.ID, "local", m.Local, "attachments", len(attachments))

	form := transport.Form{
		Fields: map[string]string{
			"question": question,
			"model":    m.ID,
		},
	}
	if apiKey != "" {
		form.Fields["apiKey"] = apiKey
	}
	for _, a := range attachments {
		form.Files = append(form.Files, transport.FormFile{Field: "files", Name: a.Name, Data: a.Data})
	}

	var resp model.LLMResponse
	if err := c.transport.Request(ctx, http.MethodPost, "/api/chat", form, transport.Options{}, &resp); err != nil {
		return nil, mapTransportError(err)
	}
	return &resp, nil
}

func mapTransportError(err error) error {
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		return &QueryError{
			Message: fmt.Sprintf("API Error: %s", apiErr.Detail),
			Err:     err,
		}
	}
	var netErr *transport.NetworkError
	if errors.As(err, &netErr) {
		return &QueryError{
			Message: "Unable to connect to the server. Please check your connection.",
			Err:     err,
		}
	}
	// Anything else is a programming defect; do not dress it up.
	return err
}

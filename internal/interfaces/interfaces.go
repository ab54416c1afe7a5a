package interfaces

import (
	"context"

	"procure-ai/client/internal/model"
	"procure-ai/client/internal/transport"
)

// This file defines the contracts between the client's core components.
// Depending on these interfaces instead of concrete implementations keeps
// the orchestration layers testable via mocks and avoids hidden shared state.

// Transport executes outbound HTTP requests with the shared retry policy.
// Implemented by transport.Client.
type Transport interface {
	Request(ctx context.Context, method, path string, body transport.Body, opts transport.Options, out any) error
}

// HealthSource exposes backend and runner liveness. Snapshot returns the
// last polled state; the Check methods probe live. Implemented by
// health.Monitor.
type HealthSource interface {
	Snapshot() model.HealthState
	CheckBackend(ctx context.Context) bool
	CheckRunner(ctx context.Context) bool
}

// CredentialStore holds the cloud API key. Implemented by credential.Store.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
}

// ModelQuerier issues a question to the currently selected model.
// Implemented by llm.Controller.
type ModelQuerier interface {
	Query(ctx context.Context, question string, attachments []model.Attachment) (*model.LLMResponse, error)
}

package errors

import "errors"

// This package defines the sentinel errors shared across the client's core.
// Services wrap these with context via fmt.Errorf("%w: ...") and callers
// branch on them with errors.Is(), keeping the business layer decoupled from
// presentation concerns. Transport-level failures have their own typed errors
// in the transport package; everything here is a pre-network decision.

var (
	// ErrValidation signifies that caller-supplied input failed a business
	// rule: an unknown model id, a missing required credential, or a
	// malformed auth form. Never retried, never causes a network call.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signifies that a referenced entity (a session id, a
	// model id) does not exist in the process state.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable signifies that a required collaborator (the API
	// backend or the local model runner) is currently unreachable and the
	// operation was abandoned before dispatch.
	ErrUnavailable = errors.New("service unavailable")
)

// Package chat owns the set of chat sessions and drives queries against the
// active model. Transcripts live in memory only; the request lifecycle is
// idle -> awaiting-response -> idle, with a typing flag raised while a query
// is in flight.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "procure-ai/client/internal/errors"
	"procure-ai/client/internal/interfaces"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/notify"
)

const (
	// Greeting seeds every new session as its first assistant message.
	Greeting = "Hello! I'm your procurement assistant. How can I help you today?"

	// OfflineReply is appended instead of querying when the backend is
	// known to be offline.
	OfflineReply = "I'm currently in offline mode. Please start the API server to interact with me."

	// defaultSessionName is used until the first user message names the
	// session.
	defaultSessionName = "New Chat"

	// sessionNameLimit caps how much of the first user message becomes
	// the session name.
	sessionNameLimit = 30
)

// Orchestrator manages sessions and the send-message flow. All state is
// owned here and accessed only through its methods; the lock is released
// across the network call so a slow backend never blocks session bookkeeping.
type Orchestrator struct {
	querier  interfaces.ModelQuerier
	health   interfaces.HealthSource
	notifier notify.Notifier

	mu       sync.Mutex
	sessions []*model.ChatSession
	current  string
	typing   bool
}

// NewOrchestrator creates an Orchestrator with no sessions. Callers create
// the first session explicitly.
func NewOrchestrator(querier interfaces.ModelQuerier, health interfaces.HealthSource, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{
		querier:  querier,
		health:   health,
		notifier: notifier,
	}
}

// CreateSession allocates a new session seeded with the greeting and makes
// it current.
func (o *Orchestrator) CreateSession() *model.ChatSession {
	now := time.Now()
	session := &model.ChatSession{
		ID:        uuid.NewString(),
		Name:      defaultSessionName,
		CreatedAt: now,
		Messages: []model.Message{{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   Greeting,
			Timestamp: now,
		}},
	}

	o.mu.Lock()
	o.sessions = append(o.sessions, session)
	o.current = session.ID
	o.mu.Unlock()

	slog.Info("Created chat session", "session_id", session.ID)
	return session
}

// Sessions returns the sessions in creation order.
func (o *Orchestrator) Sessions() []*model.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*model.ChatSession, len(o.sessions))
	copy(out, o.sessions)
	return out
}

// Current returns the active session, or ok=false when no session exists.
func (o *Orchestrator) Current() (*model.ChatSession, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.findLocked(o.current)
	return s, s != nil
}

// SetCurrent activates the session with the given id.
func (o *Orchestrator) SetCurrent(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.findLocked(id) == nil {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	o.current = id
	return nil
}

// Typing reports whether a query is in flight.
func (o *Orchestrator) Typing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.typing
}

// SendMessage appends text as a user message to the current session and
// obtains the assistant's reply.
//
// Empty (whitespace-only) text with no attachments is a no-op. When the
// polled health state says the backend is offline, a fixed offline reply is
// appended and no network attempt is made. On query failure the error is
// surfaced as a notification and nothing further is appended; the user
// message stays in the transcript, unanswered.
func (o *Orchestrator) SendMessage(ctx context.Context, text string, attachments []model.Attachment) error {
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return nil
	}

	var fileNames []string
	for _, a := range attachments {
		fileNames = append(fileNames, a.Name)
	}

	o.mu.Lock()
	session := o.findLocked(o.current)
	if session == nil {
		o.mu.Unlock()
		return fmt.Errorf("%w: no active session", apperrors.ErrNotFound)
	}
	sessionID := session.ID

	userMessage := model.Message{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
		Files:     fileNames,
	}
	// Only the greeting so far means this is the first user message; it
	// names the session, once.
	if len(session.Messages) == 1 {
		session.Name = deriveSessionName(text)
	}
	session.Messages = append(session.Messages, userMessage)

	if !o.health.Snapshot().BackendOnline {
		session.Messages = append(session.Messages, model.Message{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Content:   OfflineReply,
			Timestamp: time.Now(),
		})
		o.mu.Unlock()
		slog.Info("Backend offline, appended canned reply", "session_id", sessionID)
		return nil
	}

	o.typing = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.typing = false
		o.mu.Unlock()
	}()

	resp, err := o.querier.Query(ctx, text, attachments)
	if err != nil {
		slog.Error("Model query failed", "session_id", sessionID, "error", err)
		o.notifier.Notify(notify.Notification{
			Level:   notify.LevelError,
			Message: err.Error(),
		})
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	// The session may have been deleted while the query was in flight.
	target := o.findLocked(sessionID)
	if target == nil {
		slog.Warn("Session deleted mid-query, dropping response", "session_id", sessionID)
		return nil
	}
	target.Messages = append(target.Messages, model.Message{
		ID:              uuid.NewString(),
		Role:            model.RoleAssistant,
		Content:         resp.Text,
		Timestamp:       time.Now(),
		SourceDocuments: resp.SourceDocuments,
	})
	return nil
}

// DeleteSession removes the session with the given id. When the current
// session is deleted and others remain, the most recently created remaining
// session becomes current; when none remain, there is no current session.
func (o *Orchestrator) DeleteSession(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	idx := -1
	for i, s := range o.sessions {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}

	o.sessions = append(o.sessions[:idx], o.sessions[idx+1:]...)
	if o.current == id {
		if len(o.sessions) > 0 {
			o.current = o.sessions[len(o.sessions)-1].ID
		} else {
			o.current = ""
		}
	}
	slog.Info("Deleted chat session", "session_id", id)
	return nil
}

func (o *Orchestrator) findLocked(id string) *model.ChatSession {
	for _, s := range o.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// deriveSessionName shortens the first user message to a display name,
// rune-safe, with an ellipsis when truncated.
func deriveSessionName(text string) string {
	if strings.TrimSpace(text) == "" {
		return defaultSessionName
	}
	runes := []rune(text)
	if len(runes) <= sessionNameLimit {
		return text
	}
	return string(runes[:sessionNameLimit]) + "..."
}

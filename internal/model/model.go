package model

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatSession is one independent conversation transcript. Messages are
// append-only and keep their append order.
type ChatSession struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single entry in a session transcript. It is never mutated
// after being appended.
type Message struct {
	ID              string           `json:"id"`
	Role            Role             `json:"role"`
	Content         string           `json:"content"`
	Timestamp       time.Time        `json:"timestamp"`
	Files           []string         `json:"files,omitempty"`
	SourceDocuments []SourceDocument `json:"sourceDocuments,omitempty"`
}

// SourceDocument is a retrieval citation attached to an assistant answer.
type SourceDocument struct {
	PageContent string         `json:"pageContent"`
	Metadata    map[string]any `json:"metadata"`
}

// LLMResponse is the backend's answer to a chat query.
type LLMResponse struct {
	Text            string           `json:"text"`
	SourceDocuments []SourceDocument `json:"sourceDocuments,omitempty"`
}

// Attachment is a file submitted alongside a question.
type Attachment struct {
	Name string
	Data []byte
}

// HealthState is the last observed liveness of the backend and the local
// model runner. It is recomputed on every poll and never persisted.
type HealthState struct {
	BackendOnline bool `json:"backend_online"`
	RunnerOnline  bool `json:"runner_online"`
}

// User is the profile returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

package models

import "time"

// Role identifies who authored a message in a session history.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single history entry.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Component is the structured payload the LLM is instructed to return.
type Component struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

// Snapshot is the persisted form of a session.
// Field names match the on-disk layout: {"history": [...], "component": "..."}.
type Snapshot struct {
	History   []Message `json:"history"`
	Component string    `json:"component"`
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is returned from POST /chat. Exactly one of Response or Raw is set.
type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Response  map[string]any `json:"response,omitempty"`
	Raw       *string        `json:"raw,omitempty"`
}

// SessionSummary is a row in GET /sessions.
type SessionSummary struct {
	ID           string    `json:"id"`
	LastActive   time.Time `json:"lastActive"`
	HistoryLen   int       `json:"historyLen"`
	HasComponent bool      `json:"hasComponent"`
}

// SessionDetail is returned from GET /sessions/{id}.
type SessionDetail struct {
	ID         string    `json:"id"`
	LastActive time.Time `json:"lastActive"`
	History    []Message `json:"history"`
	Component  string    `json:"component"`
}

// ServiceCheck reports the status of a dependency.
type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status       string       `json:"status"`
	Persistence  ServiceCheck `json:"persistence"`
	SessionCount int          `json:"sessionCount"`
}

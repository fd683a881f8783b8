package llm

import (
	"context"
	"strings"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of prior conversation, oldest first.
type Message struct {
	Role    Role
	Content string
}

// Request carries everything a generation backend needs for one reply.
// Context holds pre-formatted retrieval content and is empty for direct chat.
type Request struct {
	Message  string
	Language string
	UserName string
	Relation string
	Context  string
	History  []Message
}

// Generator produces one assistant reply for a request. Implementations are
// safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// friendlyName normalizes a stored user name into something addressable in a
// reply. Placeholder values and empty strings yield "", which prompt builders
// treat as "no usable name".
func friendlyName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	switch strings.ToLower(trimmed) {
	case "null", "none", "user", "test", "unknown":
		return ""
	}
	candidate := strings.Fields(trimmed)[0]
	if len(candidate) > 14 {
		candidate = candidate[:14]
	}
	return candidate
}

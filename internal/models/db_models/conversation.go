package db_models

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ConversationMessage is kept in the key-value store as part of an ordered
// JSON array per chat session, never in postgres.
type ConversationMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

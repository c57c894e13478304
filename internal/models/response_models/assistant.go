package response_models

import "moneyflow/internal/models/db_models"

const (
	ChangeActionAdd       = "add"
	ChangeActionDeleteAll = "delete_all"
)

// ChangeDescriptor is an instruction for the owner of trip state. A
// delete_all descriptor carries no activity.
type ChangeDescriptor struct {
	Action   string              `json:"action"`
	Activity *db_models.Activity `json:"activity,omitempty"`
}

type AssistantReply struct {
	Intent     string                          `json:"intent"`
	Reply      string                          `json:"reply"`
	IsError    bool                            `json:"is_error"`
	SessionKey string                          `json:"session_key"`
	SessionID  string                          `json:"session_id,omitempty"`
	Changes    []ChangeDescriptor              `json:"changes,omitempty"`
	History    []db_models.ConversationMessage `json:"history,omitempty"`
}

type PendingCountResponse struct {
	Count     int   `json:"count"`
	UpdatedAt int64 `json:"updated_at"`
}

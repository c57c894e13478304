package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"moneyflow/internal/models/db_models"
	"moneyflow/pkg/kvstore"
)

const (
	tripHistoryPrefix    = "chat_history_"
	sessionHistoryPrefix = "chat_history_session_"
)

// HistoryKey derives the chat session key: per trip when one is selected,
// otherwise per client session.
func HistoryKey(tripID, sessionID string) string {
	if tripID != "" {
		return tripHistoryPrefix + tripID
	}
	if sessionID != "" {
		return sessionHistoryPrefix + sessionID
	}
	return ""
}

// ChatHistoryStore keeps each conversation as one JSON array under its key.
// Appends are serialised so concurrent turns in the same process never lose
// messages.
type ChatHistoryStore struct {
	kv kvstore.Store
	mu sync.Mutex
}

func NewChatHistoryStore(kv kvstore.Store) *ChatHistoryStore {
	return &ChatHistoryStore{kv: kv}
}

func (h *ChatHistoryStore) Load(ctx context.Context, key string) ([]db_models.ConversationMessage, error) {
	raw, ok, err := h.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load chat history %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []db_models.ConversationMessage{}, nil
	}
	var msgs []db_models.ConversationMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("decode chat history %s: %w", key, err)
	}
	return msgs, nil
}

func (h *ChatHistoryStore) Append(ctx context.Context, key string, msgs ...db_models.ConversationMessage) ([]db_models.ConversationMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	history, err := h.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	history = append(history, msgs...)

	raw, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode chat history %s: %w", key, err)
	}
	if err := h.kv.Set(ctx, key, string(raw)); err != nil {
		return nil, fmt.Errorf("save chat history %s: %w", key, err)
	}
	return history, nil
}

func (h *ChatHistoryStore) Clear(ctx context.Context, key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Delete(ctx, key)
}

package ai

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// SessionStore manages the persistence of chat history.
type SessionStore interface {
	// GetHistory retrieves the chat history for a given session.
	GetHistory(ctx context.Context, sessionID string) ([]llms.ChatMessage, error)

	// AddUserMessage adds a user message to the session history.
	AddUserMessage(ctx context.Context, sessionID, text string) error

	// AddAIMessage adds an AI response to the session history.
	AddAIMessage(ctx context.Context, sessionID, text string) error

	// ClearHistory clears the session history.
	ClearHistory(ctx context.Context, sessionID string) error
}

// MemoryStore is a SessionStore that keeps history in process memory.
// Suitable for tests and deployments that do not need durable history.
type MemoryStore struct {
	mu        sync.Mutex
	histories map[string][]llms.ChatMessage
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{histories: make(map[string][]llms.ChatMessage)}
}

// GetHistory implements SessionStore.
func (s *MemoryStore) GetHistory(ctx context.Context, sessionID string) ([]llms.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.histories[sessionID]
	out := make([]llms.ChatMessage, len(history))
	copy(out, history)
	return out, nil
}

// AddUserMessage implements SessionStore.
func (s *MemoryStore) AddUserMessage(ctx context.Context, sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = append(s.histories[sessionID], llms.HumanChatMessage{Content: text})
	return nil
}

// AddAIMessage implements SessionStore.
func (s *MemoryStore) AddAIMessage(ctx context.Context, sessionID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = append(s.histories[sessionID], llms.AIChatMessage{Content: text})
	return nil
}

// ClearHistory implements SessionStore.
func (s *MemoryStore) ClearHistory(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, sessionID)
	return nil
}

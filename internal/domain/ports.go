package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a record does not exist or is not
// owned by the requesting user. Callers must not distinguish the two cases.
var ErrNotFound = errors.New("not found")

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentIndex stores document chunks with precomputed embeddings and
// supports nearest-neighbor search plus a textual-search fallback.
type DocumentIndex interface {
	VectorSearch(ctx context.Context, vector []float32, k int) ([]Passage, error)
	TextSearch(ctx context.Context, query string, k int) ([]Passage, error)
	Count(ctx context.Context) (int64, error)
}

// ChatModel generates a completion for an ordered message sequence. Stateless
// per call; all context must be carried in messages.
type ChatModel interface {
	Complete(ctx context.Context, messages []PromptMessage, maxTokens int, temperature float32) (string, error)
}

// ConversationStore persists conversations and their messages. Every read
// takes the owner id and must apply the ownership filter.
type ConversationStore interface {
	CreateConversation(ctx context.Context, owner UserID, birth BirthDetails) (ConversationID, error)
	GetConversation(ctx context.Context, id ConversationID, owner UserID) (*Conversation, error)
	AppendMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, id ConversationID) ([]*Message, error)
	ListConversationsByUser(ctx context.Context, owner UserID) ([]*Conversation, error)
	Touch(ctx context.Context, id ConversationID, at time.Time) error
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// Store is an in-memory domain.ConversationStore. It is NOT persistent and
// is only suitable for development / local mode.
type Store struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	messages      map[domain.ConversationID][]*domain.Message
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		messages:      make(map[domain.ConversationID][]*domain.Message),
	}
}

func (s *Store) CreateConversation(_ context.Context, owner domain.UserID, birth domain.BirthDetails) (domain.ConversationID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	id := domain.ConversationID(uuid.NewString())
	s.conversations[id] = &domain.Conversation{
		ID:           id,
		UserID:       owner,
		BirthDetails: birth,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	return id, nil
}

func (s *Store) GetConversation(_ context.Context, id domain.ConversationID, owner domain.UserID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok || conv.UserID != owner {
		return nil, domain.ErrNotFound
	}
	copied := *conv
	return &copied, nil
}

func (s *Store) AppendMessage(_ context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *msg
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], &copied)
	return nil
}

func (s *Store) ListMessages(_ context.Context, id domain.ConversationID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[id]
	out := make([]*domain.Message, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Timestamp.Before(out[b].Timestamp)
	})
	return out, nil
}

func (s *Store) ListConversationsByUser(_ context.Context, owner domain.UserID) ([]*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Conversation
	for _, conv := range s.conversations {
		if conv.UserID == owner {
			copied := *conv
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].LastUpdated.After(out[b].LastUpdated)
	})
	return out, nil
}

func (s *Store) Touch(_ context.Context, id domain.ConversationID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return domain.ErrNotFound
	}
	conv.LastUpdated = at
	return nil
}

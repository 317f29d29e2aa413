package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

type StartInput struct {
	UserID       domain.UserID // empty for anonymous callers
	BirthDetails domain.BirthDetails
}

type StartOutput struct {
	ConversationID  string
	InitialResponse string
}

// Start opens a conversation. Authenticated callers get a persisted record
// with the welcome message stored; anonymous callers get a synthetic id.
func (s *Service) Start(ctx context.Context, in StartInput) (*StartOutput, error) {
	log := observability.LoggerFromContext(ctx).With("user_id", string(in.UserID))
	log.Info("starting conversation")

	if in.UserID == "" {
		return &StartOutput{
			ConversationID:  string(s.syntheticID()),
			InitialResponse: welcomeMessage,
		}, nil
	}

	id, err := s.store.CreateConversation(ctx, in.UserID, in.BirthDetails)
	if err != nil {
		log.Error("failed to create conversation, returning synthetic id", "error", err)
		return &StartOutput{
			ConversationID:  string(s.syntheticID()),
			InitialResponse: welcomeMessage,
		}, nil
	}

	welcome := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: id,
		Role:           domain.RoleAssistant,
		Content:        welcomeMessage,
		Timestamp:      s.now(),
	}
	if err := s.store.AppendMessage(ctx, welcome); err != nil {
		log.Error("failed to store welcome message", "error", err)
	}

	log.Info("conversation started", "conversation_id", string(id))
	return &StartOutput{
		ConversationID:  string(id),
		InitialResponse: welcomeMessage,
	}, nil
}

// History lists a conversation's messages after verifying ownership.
// Returns domain.ErrNotFound both when the conversation does not exist and
// when it belongs to someone else.
func (s *Service) History(ctx context.Context, userID domain.UserID, conversationID domain.ConversationID) ([]*domain.Message, error) {
	if _, err := s.store.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx, conversationID)
}

// ConversationSummary is one row in a user's conversation listing.
type ConversationSummary struct {
	ID          domain.ConversationID
	Title       string
	CreatedAt   domain.Timestamp
	LastUpdated domain.Timestamp
}

const titleLimit = 30

// ListConversations returns the caller's conversations newest first, titled
// by the first user message.
func (s *Service) ListConversations(ctx context.Context, userID domain.UserID) ([]ConversationSummary, error) {
	convs, err := s.store.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx)
	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		title := "New Conversation"
		msgs, err := s.store.ListMessages(ctx, c.ID)
		if err != nil {
			log.Error("failed to list messages for title", "conversation_id", string(c.ID), "error", err)
		} else {
			for _, m := range msgs {
				if m.Role == domain.RoleUser {
					title = truncateTitle(m.Content)
					break
				}
			}
		}
		out = append(out, ConversationSummary{
			ID:          c.ID,
			Title:       title,
			CreatedAt:   c.CreatedAt,
			LastUpdated: c.LastUpdated,
		})
	}
	return out, nil
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleLimit {
		return s
	}
	return string(runes[:titleLimit]) + "..."
}

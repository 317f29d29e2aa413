package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsingh1023/Astroshala/internal/app/generate"
	"github.com/aniketsingh1023/Astroshala/internal/app/prompt"
	"github.com/aniketsingh1023/Astroshala/internal/app/retrieval"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

// ErrEmptyMessage rejects requests with no user message before any
// downstream call is made.
var ErrEmptyMessage = errors.New("message is required")

// syntheticIDPrefix marks non-persisted conversation ids handed to anonymous
// callers so they can still thread a session client-side.
const syntheticIDPrefix = "direct-"

const welcomeMessage = "Welcome to Parasara Jyotish consultation! I'm your astrological assistant. Before we begin, could you please tell me a little about yourself?"

// Service orchestrates one chat request: resolve the conversation, retrieve
// context, route the topic, assemble the prompt, generate the reply, and
// persist the exchange when the caller is authenticated.
type Service struct {
	retriever *retrieval.Retriever
	generator *generate.Generator
	store     domain.ConversationStore
	now       func() time.Time

	maxTokens   int
	temperature float32
}

func NewService(
	retriever *retrieval.Retriever,
	generator *generate.Generator,
	store domain.ConversationStore,
	maxTokens int,
) *Service {
	if maxTokens <= 0 {
		maxTokens = 600
	}
	return &Service{
		retriever:   retriever,
		generator:   generator,
		store:       store,
		now:         time.Now,
		maxTokens:   maxTokens,
		temperature: 0.7,
	}
}

// HistoryEntry is a client-supplied prior turn for anonymous sessions.
type HistoryEntry struct {
	Role    string
	Content string
}

type QueryInput struct {
	UserID         domain.UserID // empty for anonymous callers
	Message        string
	ConversationID string
	BirthDetails   domain.BirthDetails
	History        []HistoryEntry
	Topic          string
}

type QueryOutput struct {
	Response       string
	ConversationID string
}

// Query runs the full pipeline for one request. Upstream failures degrade to
// fallback values; only input validation errors surface to the caller.
func (s *Service) Query(ctx context.Context, in QueryInput) (*QueryOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, ErrEmptyMessage
	}

	log := observability.LoggerFromContext(ctx).With(
		"user_id", string(in.UserID),
		"conversation_id", in.ConversationID,
	)
	log.Info("chat query received", "message_len", len(in.Message), "topic", in.Topic)

	conv := s.resolveConversation(ctx, log, in)

	retrieved := s.retriever.Retrieve(ctx, in.Message)

	instructions := prompt.SelectInstructions(log, in.Topic)

	messages := prompt.Build(prompt.BuildInput{
		Instructions: instructions,
		BirthDetails: conv.birthDetails,
		Retrieved:    retrieved,
		History:      conv.history,
		UserMessage:  in.Message,
	})

	reply := s.generator.Generate(ctx, messages, instructions.Topic, in.Message, s.maxTokens, s.temperature)

	if conv.persisted {
		s.persistExchange(ctx, log, conv.id, in.Message, reply)
	}

	log.Info("chat query completed", "persisted", conv.persisted)

	return &QueryOutput{
		Response:       reply,
		ConversationID: string(conv.id),
	}, nil
}

// resolvedConversation is the per-request view of conversation state.
type resolvedConversation struct {
	id           domain.ConversationID
	persisted    bool
	history      []*domain.Message
	birthDetails domain.BirthDetails
}

// resolveConversation decides which conversation this request belongs to.
// Ownership mismatches and lookup failures downgrade silently to a fresh
// non-persisted conversation so one user's history can never reach another.
func (s *Service) resolveConversation(ctx context.Context, log *slog.Logger, in QueryInput) resolvedConversation {
	// Authenticated continuation of an existing conversation.
	if in.UserID != "" && in.ConversationID != "" && !strings.HasPrefix(in.ConversationID, syntheticIDPrefix) {
		id := domain.ConversationID(in.ConversationID)
		conv, err := s.store.GetConversation(ctx, id, in.UserID)
		if err == nil {
			history, herr := s.store.ListMessages(ctx, id)
			if herr != nil {
				log.Error("failed to load history, continuing without it", "error", herr)
				history = nil
			}
			birth := in.BirthDetails
			if birth.Empty() {
				birth = conv.BirthDetails
			}
			return resolvedConversation{
				id:           id,
				persisted:    true,
				history:      history,
				birthDetails: birth,
			}
		}
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("conversation not found or not owned by caller, starting fresh")
		} else {
			log.Error("conversation lookup failed, starting fresh", "error", err)
		}
		return s.freshConversation(ctx, log, in)
	}

	// Authenticated caller without a conversation: create one up front.
	if in.UserID != "" {
		return s.freshConversation(ctx, log, in)
	}

	// Anonymous: no persistence, client-supplied history only.
	return resolvedConversation{
		id:           s.syntheticID(),
		history:      historyFromEntries(in.History),
		birthDetails: in.BirthDetails,
	}
}

// freshConversation creates a persisted conversation for an authenticated
// caller, degrading to a synthetic non-persisted one if the write fails.
func (s *Service) freshConversation(ctx context.Context, log *slog.Logger, in QueryInput) resolvedConversation {
	id, err := s.store.CreateConversation(ctx, in.UserID, in.BirthDetails)
	if err != nil {
		log.Error("failed to create conversation, continuing without persistence", "error", err)
		return resolvedConversation{
			id:           s.syntheticID(),
			birthDetails: in.BirthDetails,
		}
	}
	log.Info("created new conversation", "new_conversation_id", string(id))
	return resolvedConversation{
		id:           id,
		persisted:    true,
		birthDetails: in.BirthDetails,
	}
}

// persistExchange appends the user message and the reply as two independent
// writes. Failures are logged only: the reply has already been generated and
// is still returned to the caller.
func (s *Service) persistExchange(ctx context.Context, log *slog.Logger, id domain.ConversationID, userMessage, reply string) {
	now := s.now()

	userMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: id,
		Role:           domain.RoleUser,
		Content:        userMessage,
		Timestamp:      now,
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
	}

	assistantMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: id,
		Role:           domain.RoleAssistant,
		Content:        reply,
		Timestamp:      now.Add(time.Millisecond),
	}
	if err := s.store.AppendMessage(ctx, assistantMsg); err != nil {
		log.Error("failed to append assistant message", "error", err)
	}

	if err := s.store.Touch(ctx, id, now); err != nil {
		log.Error("failed to touch conversation", "error", err)
	}
}

func (s *Service) syntheticID() domain.ConversationID {
	return domain.ConversationID(fmt.Sprintf("%s%d", syntheticIDPrefix, s.now().UnixMilli()))
}

func historyFromEntries(entries []HistoryEntry) []*domain.Message {
	if len(entries) == 0 {
		return nil
	}
	out := make([]*domain.Message, 0, len(entries))
	for _, e := range entries {
		role := domain.Role(e.Role)
		switch role {
		case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
		default:
			role = domain.RoleUser
		}
		out = append(out, &domain.Message{Role: role, Content: e.Content})
	}
	return out
}

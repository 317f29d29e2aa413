package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aniketsingh1023/Astroshala/internal/app/chat"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

// Pinger reports backing-store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	svc       *chat.Service
	index     domain.DocumentIndex
	pinger    Pinger // nil for memory storage
	jwtSecret []byte
}

func NewServer(svc *chat.Service, index domain.DocumentIndex, pinger Pinger, jwtSecret []byte) http.Handler {
	s := &Server{
		svc:       svc,
		index:     index,
		pinger:    pinger,
		jwtSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/chat/query", s.handleQuery)
	mux.HandleFunc("/api/chat/start", s.handleStart)
	mux.HandleFunc("/api/chat/history", s.handleHistory)
	mux.HandleFunc("/api/chat/conversations", s.handleConversations)

	return chainMiddlewares(mux, withCORS, withLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type historyEntryRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type queryRequest struct {
	Message             string                `json:"message"`
	Query               string                `json:"query"`
	ConversationID      string                `json:"conversation_id,omitempty"`
	BirthDetails        domain.BirthDetails   `json:"birth_details,omitempty"`
	ConversationHistory []historyEntryRequest `json:"conversation_history,omitempty"`
	Topic               string                `json:"topic,omitempty"`
}

type queryResponse struct {
	Success        bool   `json:"success"`
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

type startRequest struct {
	BirthDetails domain.BirthDetails `json:"birth_details,omitempty"`
}

type startResponse struct {
	Success         bool   `json:"success"`
	ConversationID  string `json:"conversation_id"`
	InitialResponse string `json:"initial_response"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type historyResponse struct {
	Success        bool              `json:"success"`
	ConversationID string            `json:"conversation_id"`
	Messages       []messageResponse `json:"messages"`
	TotalMessages  int               `json:"total_messages"`
}

type conversationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

type conversationsResponse struct {
	Success            bool                   `json:"success"`
	Conversations      []conversationResponse `json:"conversations"`
	TotalConversations int                    `json:"total_conversations"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Parasara Jyotish API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	storage := "memory"
	if s.pinger != nil {
		storage = "connected"
		if err := s.pinger.Ping(r.Context()); err != nil {
			storage = "error: " + err.Error()
		}
	}

	vectorStore := "unavailable"
	var docCount int64
	if s.index != nil {
		if count, err := s.index.Count(r.Context()); err == nil {
			vectorStore = "available"
			docCount = count
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"storage":      storage,
		"vector_store": vectorStore,
		"documents":    docCount,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	// The frontend sends either field.
	message := req.Message
	if message == "" {
		message = req.Query
	}

	history := make([]chat.HistoryEntry, 0, len(req.ConversationHistory))
	for _, e := range req.ConversationHistory {
		history = append(history, chat.HistoryEntry{Role: e.Role, Content: e.Content})
	}

	out, err := s.svc.Query(r.Context(), chat.QueryInput{
		UserID:         s.resolveIdentity(r),
		Message:        message,
		ConversationID: req.ConversationID,
		BirthDetails:   req.BirthDetails,
		History:        history,
		Topic:          req.Topic,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			badRequest(w, "Message is required")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Success:        true,
		Response:       out.Response,
		ConversationID: out.ConversationID,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	// An empty body is fine; birth details are optional.
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.Start(r.Context(), chat.StartInput{
		UserID:       s.resolveIdentity(r),
		BirthDetails: req.BirthDetails,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startResponse{
		Success:         true,
		ConversationID:  out.ConversationID,
		InitialResponse: out.InitialResponse,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID := s.resolveIdentity(r)
	if userID == "" {
		unauthorized(w)
		return
	}

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		badRequest(w, "Conversation ID is required")
		return
	}

	msgs, err := s.svc.History(r.Context(), userID, domain.ConversationID(conversationID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "Conversation not found")
			return
		}
		internalError(w, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:        string(m.ID),
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Success:        true,
		ConversationID: conversationID,
		Messages:       out,
		TotalMessages:  len(out),
	})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID := s.resolveIdentity(r)
	if userID == "" {
		unauthorized(w)
		return
	}

	convs, err := s.svc.ListConversations(r.Context(), userID)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, conversationResponse{
			ID:          string(c.ID),
			Title:       c.Title,
			CreatedAt:   c.CreatedAt,
			LastUpdated: c.LastUpdated,
		})
	}

	writeJSON(w, http.StatusOK, conversationsResponse{
		Success:            true,
		Conversations:      out,
		TotalConversations: len(out),
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"error":   "authentication required",
	})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	observability.Logger().Error("internal server error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"success": false,
		"error":   "method not allowed",
	})
}

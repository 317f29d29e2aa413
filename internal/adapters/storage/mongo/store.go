package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// Store implements domain.ConversationStore on the conversations and
// messages collections. Every read filters on the owner id; a conversation
// that exists but belongs to someone else is indistinguishable from one
// that does not exist.
type Store struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

type conversationDoc struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	UserID       string              `bson:"user_id"`
	BirthDetails domain.BirthDetails `bson:"birth_details"`
	CreatedAt    time.Time           `bson:"created_at"`
	LastUpdated  time.Time           `bson:"last_updated"`
}

type messageDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID string             `bson:"conversation_id"`
	Role           string             `bson:"role"`
	Content        string             `bson:"content"`
	Timestamp      time.Time          `bson:"timestamp"`
}

func (s *Store) CreateConversation(ctx context.Context, owner domain.UserID, birth domain.BirthDetails) (domain.ConversationID, error) {
	now := time.Now().UTC()
	res, err := s.conversations.InsertOne(ctx, conversationDoc{
		UserID:       string(owner),
		BirthDetails: birth,
		CreatedAt:    now,
		LastUpdated:  now,
	})
	if err != nil {
		return "", fmt.Errorf("mongo CreateConversation: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo CreateConversation: unexpected inserted id type %T", res.InsertedID)
	}
	return domain.ConversationID(oid.Hex()), nil
}

func (s *Store) GetConversation(ctx context.Context, id domain.ConversationID, owner domain.UserID) (*domain.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc conversationDoc
	err = s.conversations.FindOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "user_id", Value: string(owner)},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mongo GetConversation: %w", err)
	}

	return &domain.Conversation{
		ID:           id,
		UserID:       domain.UserID(doc.UserID),
		BirthDetails: doc.BirthDetails,
		CreatedAt:    doc.CreatedAt,
		LastUpdated:  doc.LastUpdated,
	}, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	_, err := s.messages.InsertOne(ctx, messageDoc{
		ConversationID: string(msg.ConversationID),
		Role:           string(msg.Role),
		Content:        msg.Content,
		Timestamp:      msg.Timestamp.UTC(),
	})
	if err != nil {
		return fmt.Errorf("mongo AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, id domain.ConversationID) ([]*domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.messages.Find(ctx, bson.D{{Key: "conversation_id", Value: string(id)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListMessages: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Message
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}
		out = append(out, &domain.Message{
			ID:             domain.MessageID(doc.ID.Hex()),
			ConversationID: id,
			Role:           domain.Role(doc.Role),
			Content:        doc.Content,
			Timestamp:      doc.Timestamp,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo ListMessages cursor: %w", err)
	}
	return out, nil
}

func (s *Store) ListConversationsByUser(ctx context.Context, owner domain.UserID) ([]*domain.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := s.conversations.Find(ctx, bson.D{{Key: "user_id", Value: string(owner)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo ListConversationsByUser: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Conversation
	for cursor.Next(ctx) {
		var doc conversationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode conversationDoc: %w", err)
		}
		out = append(out, &domain.Conversation{
			ID:           domain.ConversationID(doc.ID.Hex()),
			UserID:       domain.UserID(doc.UserID),
			BirthDetails: doc.BirthDetails,
			CreatedAt:    doc.CreatedAt,
			LastUpdated:  doc.LastUpdated,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo ListConversationsByUser cursor: %w", err)
	}
	return out, nil
}

func (s *Store) Touch(ctx context.Context, id domain.ConversationID, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return domain.ErrNotFound
	}
	_, err = s.conversations.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "last_updated", Value: at.UTC()}}}},
	)
	if err != nil {
		return fmt.Errorf("mongo Touch: %w", err)
	}
	return nil
}

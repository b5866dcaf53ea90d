// File: database/repository/chat/chat_mongo.go
package chatRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentora/models"
)

// Create inserts the session; if another request created one for the same
// booking first, the duplicate-key error is swallowed and the existing
// session is returned instead.
func (r *mongoChatRepo) Create(ctx context.Context, session *models.ChatSession) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()

	_, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.GetByBookingID(ctx, session.BookingID)
		}
		return nil, fmt.Errorf("failed to insert chat session: %w", err)
	}
	return session, nil
}

func (r *mongoChatRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.ChatSession
	err := r.sessions.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &session, nil
}

func (r *mongoChatRepo) GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.ChatSession
	err := r.sessions.FindOne(ctx, bson.M{"id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &session, nil
}

func (r *mongoChatRepo) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.SentAt = time.Now()

	_, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (r *mongoChatRepo) ListMessages(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"sentAt": 1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.messages.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}
	return msgs, nil
}

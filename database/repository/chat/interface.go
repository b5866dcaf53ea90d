// File: database/repository/chat/interface.go
package chatRepo

import (
	"context"
	"errors"
	"log"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no chat session matches the identifier.
var ErrNotFound = errors.New("chat session not found")

// ChatRepository persists chat sessions and their messages. A session is
// created at most once per booking; the unique bookingId index makes
// concurrent opens collapse onto the first writer.
type ChatRepository interface {
	Create(ctx context.Context, session *models.ChatSession) (*models.ChatSession, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.ChatSession, error)
	GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error)
}

type mongoChatRepo struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

// NewMongoChatRepo constructs a new MongoDB ChatRepository.
func NewMongoChatRepo() ChatRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	r := &mongoChatRepo{
		sessions: db.Collection("chat_sessions"),
		messages: db.Collection("chat_messages"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("chat repo: %v", err)
	}
	return r
}

package chat

import (
	"context"
	"time"

	bookingRepo "mentora/database/repository/booking"
	chatRepo "mentora/database/repository/chat"
	planRepo "mentora/database/repository/plan"
	"mentora/models"

	"go.uber.org/zap"
)

// ChatService derives and enforces the post-session messaging window.
type ChatService interface {
	Open(ctx context.Context, bookingID string, requester models.Actor) (*models.ChatSession, error)
	PostMessage(ctx context.Context, sessionID, senderID, text string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, sessionID string, requester models.Actor) ([]models.ChatMessage, error)
}

// DefaultChatService implements ChatService. Now is injectable for the
// window-boundary tests and defaults to time.Now.
type DefaultChatService struct {
	Bookings bookingRepo.BookingRepository
	Chats    chatRepo.ChatRepository
	Plans    planRepo.PlanRepository
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

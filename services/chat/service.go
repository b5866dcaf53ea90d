package chat

import (
	"context"
	"errors"
	"strings"

	bookingRepo "mentora/database/repository/booking"
	chatRepo "mentora/database/repository/chat"
	planRepo "mentora/database/repository/plan"
	"mentora/models"
	"mentora/utils"

	"go.uber.org/zap"
)

// Open returns the booking's chat session, creating it on first request.
// The window is computed once from the captured session end and the
// plan's chat-window length, then stored; a later open returns the stored
// session unchanged even if the plan has since been edited.
func (s *DefaultChatService) Open(ctx context.Context, bookingID string, requester models.Actor) (*models.ChatSession, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "booking not found")
		}
		return nil, err
	}

	if !requester.IsAdmin() && requester.ID != b.ClientID && requester.ID != b.MentorID {
		return nil, utils.NewServiceError(utils.CodeForbidden, "chat is private to the booking's parties")
	}
	if b.Status != models.BookingStatusConfirmed {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "chat requires a confirmed booking")
	}

	existing, err := s.Chats.GetByBookingID(ctx, bookingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, chatRepo.ErrNotFound) {
		return nil, err
	}

	plan, err := s.Plans.GetByID(ctx, b.PlanID)
	if err != nil {
		if errors.Is(err, planRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "plan not found")
		}
		return nil, err
	}

	session := &models.ChatSession{
		BookingID:   b.ID,
		ClientID:    b.ClientID,
		MentorID:    b.MentorID,
		WindowStart: b.SessionEnd,
		WindowEnd:   b.SessionEnd.AddDate(0, 0, plan.ChatWindowDays),
		Active:      true,
	}

	created, err := s.Chats.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("chat window opened",
		zap.String("bookingId", b.ID),
		zap.Time("windowEnd", created.WindowEnd),
	)
	return created, nil
}

// PostMessage appends a message if the sender is a party and the window
// has not closed. There is no re-opening after expiry.
func (s *DefaultChatService) PostMessage(ctx context.Context, sessionID, senderID, text string) (*models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, utils.NewServiceError(utils.CodeInvalidTransition, "message text is empty")
	}

	session, err := s.Chats.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, chatRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "chat session not found")
		}
		return nil, err
	}

	if senderID != session.ClientID && senderID != session.MentorID {
		return nil, utils.NewServiceError(utils.CodeForbidden, "chat is private to the booking's parties")
	}
	if session.IsExpired(s.now()) {
		return nil, utils.NewServiceError(utils.CodeWindowClosed, "the messaging window has closed")
	}

	msg := &models.ChatMessage{
		SessionID: session.ID,
		SenderID:  senderID,
		Text:      text,
	}
	if err := s.Chats.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns the session history to a party or an admin.
func (s *DefaultChatService) ListMessages(ctx context.Context, sessionID string, requester models.Actor) ([]models.ChatMessage, error) {
	session, err := s.Chats.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, chatRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "chat session not found")
		}
		return nil, err
	}
	if !requester.IsAdmin() && requester.ID != session.ClientID && requester.ID != session.MentorID {
		return nil, utils.NewServiceError(utils.CodeForbidden, "chat is private to the booking's parties")
	}
	return s.Chats.ListMessages(ctx, sessionID, 0)
}

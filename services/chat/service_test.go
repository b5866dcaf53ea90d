package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingRepo "mentora/database/repository/booking"
	chatRepo "mentora/database/repository/chat"
	planRepo "mentora/database/repository/plan"
	"mentora/models"
	"mentora/utils"

	"go.uber.org/zap"
)

// stubBookingRepo serves GetByID from a map; the embedded interface is
// never touched because the chat service reads bookings only.
type stubBookingRepo struct {
	bookingRepo.BookingRepository
	bookings map[string]*models.Booking
}

func (r *stubBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

type stubPlanRepo struct {
	planRepo.PlanRepository
	plans map[string]*models.Plan
}

func (r *stubPlanRepo) GetByID(ctx context.Context, planID string) (*models.Plan, error) {
	p, ok := r.plans[planID]
	if !ok {
		return nil, planRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*models.ChatSession // by session ID
	byBook   map[string]*models.ChatSession
	messages map[string][]models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		sessions: make(map[string]*models.ChatSession),
		byBook:   make(map[string]*models.ChatSession),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, session *models.ChatSession) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byBook[session.BookingID]; ok {
		cp := *existing
		return &cp, nil
	}
	r.nextID++
	cp := *session
	cp.ID = fmt.Sprintf("cs%d", r.nextID)
	cp.CreatedAt = time.Now()
	r.sessions[cp.ID] = &cp
	r.byBook[cp.BookingID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeChatRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byBook[bookingID]
	if !ok {
		return nil, chatRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, chatRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.SentAt = time.Now()
	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], *msg)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ChatMessage(nil), r.messages[sessionID]...), nil
}

var sessionEnd = time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)

func newChatFixture(status string, windowDays int) (*DefaultChatService, *fakeChatRepo) {
	bookings := &stubBookingRepo{bookings: map[string]*models.Booking{
		"b1": {
			ID: "b1", ClientID: "c1", MentorID: "m1", PlanID: "p1",
			Status:     status,
			SessionEnd: sessionEnd,
		},
	}}
	plans := &stubPlanRepo{plans: map[string]*models.Plan{
		"p1": {ID: "p1", MentorID: "m1", ChatWindowDays: windowDays, Active: true},
	}}
	chats := newFakeChatRepo()
	svc := &DefaultChatService{
		Bookings: bookings,
		Chats:    chats,
		Plans:    plans,
		Logger:   zap.NewNop(),
	}
	return svc, chats
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	client := models.Actor{ID: "c1", Role: models.RoleClient}

	t.Run("derives the window from session end and plan length", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)

		session, err := svc.Open(ctx, "b1", client)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		if !session.WindowStart.Equal(sessionEnd) {
			t.Errorf("WindowStart = %v, want the session end %v", session.WindowStart, sessionEnd)
		}
		want := sessionEnd.AddDate(0, 0, 3)
		if !session.WindowEnd.Equal(want) {
			t.Errorf("WindowEnd = %v, want %v", session.WindowEnd, want)
		}
	})

	t.Run("second open returns the same session even after a plan edit", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)

		first, err := svc.Open(ctx, "b1", client)
		if err != nil {
			t.Fatalf("first Open: %v", err)
		}
		// Shorten the plan's window; the stored session must not move.
		svc.Plans.(*stubPlanRepo).plans["p1"].ChatWindowDays = 1

		second, err := svc.Open(ctx, "b1", client)
		if err != nil {
			t.Fatalf("second Open: %v", err)
		}
		if second.ID != first.ID || !second.WindowEnd.Equal(first.WindowEnd) {
			t.Error("reopening must return the original session with its original window")
		}
	})

	t.Run("requires a confirmed booking", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusPending, 3)

		_, err := svc.Open(ctx, "b1", client)
		if utils.ErrorCode(err) != utils.CodeInvalidTransition {
			t.Fatalf("error code = %q, want invalid_transition", utils.ErrorCode(err))
		}
	})

	t.Run("strangers cannot open the chat", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)

		_, err := svc.Open(ctx, "b1", models.Actor{ID: "c9", Role: models.RoleClient})
		if utils.ErrorCode(err) != utils.CodeForbidden {
			t.Fatalf("error code = %q, want forbidden", utils.ErrorCode(err))
		}
	})

	t.Run("zero-day window closes at session end", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 0)

		session, err := svc.Open(ctx, "b1", client)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		if !session.WindowEnd.Equal(sessionEnd) {
			t.Errorf("WindowEnd = %v, want %v", session.WindowEnd, sessionEnd)
		}
	})
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	client := models.Actor{ID: "c1", Role: models.RoleClient}

	openSession := func(t *testing.T, svc *DefaultChatService) *models.ChatSession {
		t.Helper()
		session, err := svc.Open(ctx, "b1", client)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		return session
	}

	t.Run("inside the window", func(t *testing.T) {
		svc, chats := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return sessionEnd.AddDate(0, 0, 3).Add(-time.Minute) }

		msg, err := svc.PostMessage(ctx, session.ID, "c1", "thanks for today")
		if err != nil {
			t.Fatalf("PostMessage returned error: %v", err)
		}
		if msg.SenderID != "c1" {
			t.Errorf("SenderID = %q, want c1", msg.SenderID)
		}
		stored, _ := chats.ListMessages(ctx, session.ID, 0)
		if len(stored) != 1 {
			t.Errorf("messages stored = %d, want 1", len(stored))
		}
	})

	t.Run("exactly at the boundary is still inside", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return session.WindowEnd }

		if _, err := svc.PostMessage(ctx, session.ID, "c1", "last words"); err != nil {
			t.Fatalf("boundary message should be accepted, got %v", err)
		}
	})

	t.Run("after the window has closed", func(t *testing.T) {
		svc, chats := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return session.WindowEnd.Add(time.Minute) }

		_, err := svc.PostMessage(ctx, session.ID, "c1", "too late")
		if utils.ErrorCode(err) != utils.CodeWindowClosed {
			t.Fatalf("error code = %q, want window_closed", utils.ErrorCode(err))
		}
		stored, _ := chats.ListMessages(ctx, session.ID, 0)
		if len(stored) != 0 {
			t.Error("no message may be stored after the window closes")
		}
	})

	t.Run("mentor may also write", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return sessionEnd.Add(time.Hour) }

		if _, err := svc.PostMessage(ctx, session.ID, "m1", "here are the notes"); err != nil {
			t.Fatalf("mentor message should be accepted, got %v", err)
		}
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return sessionEnd.Add(time.Hour) }

		_, err := svc.PostMessage(ctx, session.ID, "c9", "hello")
		if utils.ErrorCode(err) != utils.CodeForbidden {
			t.Fatalf("error code = %q, want forbidden", utils.ErrorCode(err))
		}
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)
		session := openSession(t, svc)
		svc.Now = func() time.Time { return sessionEnd.Add(time.Hour) }

		if _, err := svc.PostMessage(ctx, session.ID, "c1", "   "); err == nil {
			t.Fatal("blank message should be rejected")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)

		_, err := svc.PostMessage(ctx, "nope", "c1", "hi")
		if utils.ErrorCode(err) != utils.CodeNotFound {
			t.Fatalf("error code = %q, want not_found", utils.ErrorCode(err))
		}
	})
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()
	client := models.Actor{ID: "c1", Role: models.RoleClient}

	svc, _ := newChatFixture(models.BookingStatusConfirmed, 3)
	session, err := svc.Open(ctx, "b1", client)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	svc.Now = func() time.Time { return sessionEnd.Add(time.Hour) }
	for _, text := range []string{"one", "two"} {
		if _, err := svc.PostMessage(ctx, session.ID, "c1", text); err != nil {
			t.Fatalf("PostMessage: %v", err)
		}
	}

	t.Run("party reads the history", func(t *testing.T) {
		msgs, err := svc.ListMessages(ctx, session.ID, client)
		if err != nil {
			t.Fatalf("ListMessages returned error: %v", err)
		}
		if len(msgs) != 2 {
			t.Errorf("messages = %d, want 2", len(msgs))
		}
	})

	t.Run("history stays readable after the window closes", func(t *testing.T) {
		svc.Now = func() time.Time { return session.WindowEnd.Add(240 * time.Hour) }
		msgs, err := svc.ListMessages(ctx, session.ID, client)
		if err != nil {
			t.Fatalf("ListMessages returned error: %v", err)
		}
		if len(msgs) != 2 {
			t.Errorf("messages = %d, want 2", len(msgs))
		}
	})

	t.Run("strangers cannot read", func(t *testing.T) {
		_, err := svc.ListMessages(ctx, session.ID, models.Actor{ID: "c9", Role: models.RoleClient})
		if utils.ErrorCode(err) != utils.CodeForbidden {
			t.Fatalf("error code = %q, want forbidden", utils.ErrorCode(err))
		}
	})
}

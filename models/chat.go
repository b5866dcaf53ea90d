package models

import "time"

// ChatSession is the bounded post-session messaging window between a
// client and a mentor. WindowEnd is computed once, at creation, from the
// slot end time and the plan's chat-window length; it is never recomputed
// from current plan state.
type ChatSession struct {
	ID          string    `bson:"id" json:"id"`
	BookingID   string    `bson:"bookingId" json:"bookingId"`
	ClientID    string    `bson:"clientId" json:"clientId"`
	MentorID    string    `bson:"mentorId" json:"mentorId"`
	WindowStart time.Time `bson:"windowStart" json:"windowStart"` // = slot end time
	WindowEnd   time.Time `bson:"windowEnd" json:"windowEnd"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// IsExpired reports whether the window has closed at the given instant.
// The boundary itself is still inside the window.
func (s ChatSession) IsExpired(now time.Time) bool {
	return now.After(s.WindowEnd)
}

// ChatMessage is a single message inside a chat session.
type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	SenderID  string    `bson:"senderId" json:"senderId"`
	Text      string    `bson:"text" json:"text"`
	SentAt    time.Time `bson:"sentAt" json:"sentAt"`
}

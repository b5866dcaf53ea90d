package models

import "time"

// Booking status values. Transitions are monotone:
// pending → confirmed, pending → cancelled, pending → expired,
// confirmed → cancelled (administrative only). Everything else is rejected.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusExpired   = "expired"
)

// Session status values, an independent axis from the payment lifecycle.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

// Booking binds a client, mentor, plan and slot with a payment order and
// lifecycle status. Price, duration and the slot interval are captured at
// creation so later plan or slot edits cannot skew a live booking.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	ClientID      string    `bson:"clientId" json:"clientId"`
	MentorID      string    `bson:"mentorId" json:"mentorId"`
	PlanID        string    `bson:"planId" json:"planId"`
	SlotID        string    `bson:"slotId" json:"slotId"`
	Amount        int64     `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	OrderRef      string    `bson:"orderRef" json:"orderRef"`                           // payment order, assigned at creation
	PaymentRef    string    `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`   // assigned on successful confirmation
	FailureReason string    `bson:"failureReason,omitempty" json:"failureReason,omitempty"` // gateway-asserted payment failure
	CancelReason  string    `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	Status        string    `bson:"status" json:"status"`
	SessionStatus string    `bson:"sessionStatus" json:"sessionStatus"`
	JoinLink      string    `bson:"joinLink,omitempty" json:"joinLink,omitempty"`
	SessionStart  time.Time `bson:"sessionStart" json:"sessionStart"`
	SessionEnd    time.Time `bson:"sessionEnd" json:"sessionEnd"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingReceipt is returned to the client after a reservation; it carries
// what the gateway checkout needs.
type BookingReceipt struct {
	BookingID string `json:"bookingId"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"log"
	"time"

	"mentora/database"
	"mentora/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking matches the given identifier.
var ErrNotFound = errors.New("booking not found")

// ErrSlotTaken is returned when the transactional slot claim inside
// CreateWithSlot or Reschedule finds the target slot occupied or missing.
var ErrSlotTaken = errors.New("slot already occupied")

// BookingRepository persists bookings. Status transitions are expressed
// as conditional updates (the filter names the expected current status),
// never as read-then-write, so concurrent callers converge on exactly one
// winner. CreateWithSlot and Reschedule touch the slots collection inside
// a session transaction because they must move two records atomically.
type BookingRepository interface {
	CreateWithSlot(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByOrderRef(ctx context.Context, orderRef string) (*models.Booking, error)
	// ConfirmByOrderRef flips pending → confirmed and stores the payment
	// reference in one conditional update. It returns (nil, nil) when no
	// pending booking matched, leaving the caller to distinguish
	// already-confirmed from unknown.
	ConfirmByOrderRef(ctx context.Context, orderRef, paymentRef string) (*models.Booking, error)
	// FailPendingByOrderRef flips pending → cancelled recording the
	// gateway failure reason; same (nil, nil) contract as confirmation.
	FailPendingByOrderRef(ctx context.Context, orderRef, reason string) (*models.Booking, error)
	// TransitionStatus moves the booking from the expected status to the
	// target status, recording an optional reason. It reports whether the
	// conditional update matched.
	TransitionStatus(ctx context.Context, bookingID, from, to, reason string) (bool, error)
	Reschedule(ctx context.Context, bookingID, oldSlotID, newSlotID, holderID string, newStart, newEnd time.Time) error
	SetJoinLink(ctx context.Context, bookingID, link string) error
	SetSessionStatus(ctx context.Context, bookingID, sessionStatus string) error
	ListStalePending(ctx context.Context, olderThan time.Time) ([]models.Booking, error)
	DeletePending(ctx context.Context, bookingID string) (bool, error)
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	r := &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		slotColl: db.Collection("slots"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("booking repo: %v", err)
	}
	return r
}
